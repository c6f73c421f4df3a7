// controllers/commission_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/services"
	"github.com/rentora/rentora_backend/utils"
)

// CommissionController exposes the commission ledger to reporting consumers
// and drives payout administration. All writes go through the ledger
// service; this controller never touches the ledger collections' numeric
// fields directly.
type CommissionController struct {
	DB     *mongo.Database
	Ledger *services.CommissionLedgerService
}

// NewCommissionController creates a new commission controller
func NewCommissionController(db *mongo.Database, ledger *services.CommissionLedgerService) *CommissionController {
	return &CommissionController{DB: db, Ledger: ledger}
}

// GetLedgerByPayment returns the payment/commission/payout triad by payment id
func (cc *CommissionController) GetLedgerByPayment(c echo.Context) error {
	return cc.triad(c, func(ctx context.Context, id primitive.ObjectID) (*services.LedgerTriad, error) {
		return cc.Ledger.TriadByPaymentID(ctx, id)
	})
}

// GetLedgerByCommission returns the triad by commission record id
func (cc *CommissionController) GetLedgerByCommission(c echo.Context) error {
	return cc.triad(c, func(ctx context.Context, id primitive.ObjectID) (*services.LedgerTriad, error) {
		return cc.Ledger.TriadByCommissionID(ctx, id)
	})
}

// GetLedgerByPayout returns the triad by landlord payout id
func (cc *CommissionController) GetLedgerByPayout(c echo.Context) error {
	return cc.triad(c, func(ctx context.Context, id primitive.ObjectID) (*services.LedgerTriad, error) {
		return cc.Ledger.TriadByPayoutID(ctx, id)
	})
}

func (cc *CommissionController) triad(c echo.Context, lookup func(context.Context, primitive.ObjectID) (*services.LedgerTriad, error)) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	triad, err := lookup(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: err.Error(),
			})
		}
		log.Printf("Error resolving commission ledger: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commission ledger",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission ledger retrieved successfully",
		Data:    triad,
	})
}

// ListAgentCommissions lists commission records earned by an agent
func (cc *CommissionController) ListAgentCommissions(c echo.Context) error {
	return cc.listCommissions(c, "agentId")
}

// ListAgencyCommissions lists commission records earned through an agency
func (cc *CommissionController) ListAgencyCommissions(c echo.Context) error {
	return cc.listCommissions(c, "agencyId")
}

func (cc *CommissionController) listCommissions(c echo.Context, field string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{field: id}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}
	minAmount, err := utils.ParseFloat(c.QueryParam("minAmount"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid minAmount",
		})
	}
	if minAmount > 0 {
		filter["totalPaymentAmount"] = bson.M{"$gte": minAmount}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := cc.DB.Collection("commission_records").Find(ctx, filter, opts)
	if err != nil {
		log.Printf("Error listing commissions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commissions",
		})
	}
	defer cursor.Close(ctx)

	var commissions []models.CommissionRecord
	if err = cursor.All(ctx, &commissions); err != nil {
		log.Printf("Error decoding commissions: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions retrieved successfully",
		Data:    commissions,
	})
}

// AddPayoutAdjustment appends a manual addition or deduction to a payout
func (cc *CommissionController) AddPayoutAdjustment(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID",
		})
	}

	var req models.PayoutAdjustmentRequest
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

	payout, err := cc.Ledger.AddPayoutAdjustment(ctx, payoutID, models.PayoutAdjustment{
		Type:   req.Type,
		Label:  req.Label,
		Amount: req.Amount,
	})
	if err != nil {
		return cc.payoutError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout adjustment added successfully",
		Data:    payout,
	})
}

// MarkPayoutProcessed moves a pending payout to PROCESSED
func (cc *CommissionController) MarkPayoutProcessed(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payout, err := cc.Ledger.MarkPayoutProcessed(ctx, payoutID)
	if err != nil {
		return cc.payoutError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout marked processed",
		Data:    payout,
	})
}

// MarkPayoutPaid finalizes a payout; the commission record becomes PAID and
// the underlying payment's amounts are frozen from here on
func (cc *CommissionController) MarkPayoutPaid(c echo.Context) error {
	payoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payout ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pair, err := cc.Ledger.MarkPayoutPaid(ctx, payoutID)
	if err != nil {
		return cc.payoutError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payout marked paid",
		Data:    pair,
	})
}

func (cc *CommissionController) payoutError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrCommissionAlreadyPaid):
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: err.Error(),
		})
	default:
		log.Printf("Payout operation error: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Payout operation failed",
		})
	}
}
