package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentora/rentora_backend/middleware"
	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/repositories"
)

// PropertyController handles property registration and commission policy
// configuration
type PropertyController struct {
	DB       *mongo.Database
	Policies *repositories.PolicyRepository
}

// NewPropertyController creates a new property controller
func NewPropertyController(db *mongo.Database, policies *repositories.PolicyRepository) *PropertyController {
	return &PropertyController{DB: db, Policies: policies}
}

// CreateProperty registers a property for the authenticated landlord
func (pc *PropertyController) CreateProperty(c echo.Context) error {
	landlordID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var req models.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	property := models.Property{
		LandlordID:            landlordID,
		Name:                  req.Name,
		Address:               req.Address,
		City:                  req.City,
		UnitCount:             req.UnitCount,
		CommissionType:        req.CommissionType,
		CommissionRate:        req.CommissionRate,
		CommissionFixedAmount: req.CommissionFixedAmount,
		PlatformFeePercent:    req.PlatformFeePercent,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	result, err := pc.DB.Collection("properties").InsertOne(ctx, property)
	if err != nil {
		log.Printf("Error inserting property: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create property",
		})
	}
	property.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Property created successfully",
		Data:    property,
	})
}

// GetProperty retrieves a property by id
func (pc *PropertyController) GetProperty(c echo.Context) error {
	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid property ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var property models.Property
	err = pc.DB.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Property not found",
		})
	}
	if err != nil {
		log.Printf("Error finding property: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve property",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Property retrieved successfully",
		Data:    property,
	})
}

// ListMyProperties lists the authenticated landlord's properties
func (pc *PropertyController) ListMyProperties(c echo.Context) error {
	landlordID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.DB.Collection("properties").Find(ctx, bson.M{"landlordId": landlordID})
	if err != nil {
		log.Printf("Error listing properties: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve properties",
		})
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err = cursor.All(ctx, &properties); err != nil {
		log.Printf("Error decoding properties: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve properties",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Properties retrieved successfully",
		Data:    properties,
	})
}

// UpdateCommissionPolicy changes a property's commission policy. Existing
// commission records are unaffected: they recompute against their frozen
// historical settings.
func (pc *PropertyController) UpdateCommissionPolicy(c echo.Context) error {
	landlordID, err := middleware.ExtractUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	propertyID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid property ID",
		})
	}

	var req models.UpdateCommissionPolicyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"commissionType":        req.CommissionType,
			"commissionRate":        req.CommissionRate,
			"commissionFixedAmount": req.CommissionFixedAmount,
			"platformFeePercent":    req.PlatformFeePercent,
			"updatedAt":             time.Now(),
		},
	}

	result, err := pc.DB.Collection("properties").UpdateOne(ctx,
		bson.M{"_id": propertyID, "landlordId": landlordID}, update)
	if err != nil {
		log.Printf("Error updating commission policy: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update commission policy",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Property not found",
		})
	}

	// Drop the cached policy so the next evaluation sees the new values
	pc.Policies.InvalidateProperty(ctx, propertyID)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission policy updated successfully",
	})
}
