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

	"github.com/rentora/rentora_backend/models"
)

// LeaseController handles lease creation and retrieval
type LeaseController struct {
	DB *mongo.Database
}

// NewLeaseController creates a new lease controller
func NewLeaseController(db *mongo.Database) *LeaseController {
	return &LeaseController{DB: db}
}

// CreateLease binds a tenant, agent and optional agency to a property
func (lc *LeaseController) CreateLease(c echo.Context) error {
	var req models.CreateLeaseRequest
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

	propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid property ID",
		})
	}
	tenantID, err := primitive.ObjectIDFromHex(req.TenantID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid tenant ID",
		})
	}
	agentID, err := primitive.ObjectIDFromHex(req.AgentID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid agent ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var property models.Property
	err = lc.DB.Collection("properties").FindOne(ctx, bson.M{"_id": propertyID}).Decode(&property)
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
			Message: "Failed to create lease",
		})
	}

	now := time.Now()
	lease := models.Lease{
		PropertyID:           propertyID,
		TenantID:             tenantID,
		LandlordID:           property.LandlordID,
		AgentID:              agentID,
		AgencyCommissionRate: req.AgencyCommissionRate,
		RentAmount:           req.RentAmount,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Status:               models.LeaseStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if req.AgencyID != "" {
		agencyID, err := primitive.ObjectIDFromHex(req.AgencyID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid agency ID",
			})
		}
		count, err := lc.DB.Collection("agencies").CountDocuments(ctx, bson.M{"_id": agencyID})
		if err != nil || count == 0 {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Agency not found",
			})
		}
		lease.AgencyID = &agencyID
		lease.AgencyEnabled = true
	}

	result, err := lc.DB.Collection("leases").InsertOne(ctx, lease)
	if err != nil {
		log.Printf("Error inserting lease: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create lease",
		})
	}
	lease.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Lease created successfully",
		Data:    lease,
	})
}

// GetLease retrieves a lease by id
func (lc *LeaseController) GetLease(c echo.Context) error {
	leaseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lease ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var lease models.Lease
	err = lc.DB.Collection("leases").FindOne(ctx, bson.M{"_id": leaseID}).Decode(&lease)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Lease not found",
		})
	}
	if err != nil {
		log.Printf("Error finding lease: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve lease",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Lease retrieved successfully",
		Data:    lease,
	})
}
