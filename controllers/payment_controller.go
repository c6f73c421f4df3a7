// controllers/payment_controller.go
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentora/rentora_backend/models"
	"github.com/rentora/rentora_backend/services"
	"github.com/rentora/rentora_backend/utils"
)

// PaymentController handles payment lifecycle mutations. Every settled status
// or amount change is reported to the payment status gate inside the same
// request, so the commission ledger never lags behind the payment.
type PaymentController struct {
	DB     *mongo.Database
	Gate   *services.PaymentStatusGate
	Ledger *services.CommissionLedgerService
}

// NewPaymentController creates a new payment controller
func NewPaymentController(db *mongo.Database, gate *services.PaymentStatusGate, ledger *services.CommissionLedgerService) *PaymentController {
	return &PaymentController{DB: db, Gate: gate, Ledger: ledger}
}

// CreatePayment creates a billable payment on a lease
func (pc *PaymentController) CreatePayment(c echo.Context) error {
	var req models.CreatePaymentRequest
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

	leaseID, err := primitive.ObjectIDFromHex(req.LeaseID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lease ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var lease models.Lease
	err = pc.DB.Collection("leases").FindOne(ctx, bson.M{"_id": leaseID}).Decode(&lease)
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
			Message: "Failed to create payment",
		})
	}

	now := time.Now()
	payment := models.PaymentRecord{
		LeaseID:      lease.ID,
		PropertyID:   lease.PropertyID,
		TenantID:     lease.TenantID,
		LandlordID:   lease.LandlordID,
		AgentID:      lease.AgentID,
		Type:         req.Type,
		Reference:    uuid.NewString(),
		Amount:       utils.Round2(req.Amount),
		ExtraCharges: req.ExtraCharges,
		DueDate:      req.DueDate,
		Status:       models.PaymentStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := pc.DB.Collection("payment_records").InsertOne(ctx, payment)
	if err != nil {
		log.Printf("Error inserting payment: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create payment",
		})
	}
	payment.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Payment created successfully",
		Data:    payment,
	})
}

// GetPayment retrieves a payment by id
func (pc *PaymentController) GetPayment(c echo.Context) error {
	payment, errResp := pc.findPayment(c)
	if errResp != nil {
		return errResp(c)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment retrieved successfully",
		Data:    payment,
	})
}

// ListPaymentsByLease lists all payments on a lease
func (pc *PaymentController) ListPaymentsByLease(c echo.Context) error {
	leaseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid lease ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := pc.DB.Collection("payment_records").Find(ctx, bson.M{"leaseId": leaseID})
	if err != nil {
		log.Printf("Error listing payments: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payments",
		})
	}
	defer cursor.Close(ctx)

	var payments []models.PaymentRecord
	if err = cursor.All(ctx, &payments); err != nil {
		log.Printf("Error decoding payments: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payments",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payments retrieved successfully",
		Data:    payments,
	})
}

// UpdatePaymentAmount amends the billed amount and extra charges. Once the
// commission for this payment has been paid out the amounts are frozen and
// the mutation is rejected here, before the engine is invoked.
func (pc *PaymentController) UpdatePaymentAmount(c echo.Context) error {
	payment, errResp := pc.findPayment(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.UpdatePaymentAmountRequest
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

	frozen, err := pc.Ledger.AmountFrozen(ctx, payment)
	if err != nil {
		log.Printf("Error checking amount freeze: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update payment",
		})
	}
	if frozen {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Payment amounts are frozen: commission has already been paid out",
		})
	}

	payment.Amount = utils.Round2(req.Amount)
	payment.ExtraCharges = req.ExtraCharges
	payment.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"amount":       payment.Amount,
			"extraCharges": payment.ExtraCharges,
			"updatedAt":    payment.UpdatedAt,
		},
	}
	if _, err := pc.DB.Collection("payment_records").UpdateOne(ctx, bson.M{"_id": payment.ID}, update); err != nil {
		log.Printf("Error updating payment amount: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update payment",
		})
	}

	// An amended PAID payment must recompute its ledger pair
	if payment.Status == models.PaymentStatusPaid {
		if err := pc.Gate.OnStatusSettled(ctx, payment, models.PaymentStatusPaid); err != nil {
			return pc.gateError(c, err)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment updated successfully",
		Data:    payment,
	})
}

// UpdatePaymentStatus moves a payment through its lifecycle and reports the
// settled transition to the commission engine.
func (pc *PaymentController) UpdatePaymentStatus(c echo.Context) error {
	payment, errResp := pc.findPayment(c)
	if errResp != nil {
		return errResp(c)
	}

	var req models.UpdatePaymentStatusRequest
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

	previousStatus := payment.Status
	if req.Status == previousStatus {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Payment status unchanged",
			Data:    payment,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	payment.Status = req.Status
	payment.UpdatedAt = time.Now()

	set := bson.M{
		"status":    payment.Status,
		"updatedAt": payment.UpdatedAt,
	}
	unset := bson.M{}

	if req.Status == models.PaymentStatusPaid {
		now := time.Now()
		payment.PaidAt = &now
		payment.PaidAmount = req.PaidAmount
		if payment.PaidAmount == 0 {
			payment.PaidAmount = utils.Round2(payment.TotalAmount())
		}
		set["paidAt"] = payment.PaidAt
		set["paidAmount"] = payment.PaidAmount
	} else if previousStatus == models.PaymentStatusPaid {
		payment.PaidAt = nil
		payment.PaidAmount = 0
		set["paidAmount"] = 0.0
		unset["paidAt"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if _, err := pc.DB.Collection("payment_records").UpdateOne(ctx, bson.M{"_id": payment.ID}, update); err != nil {
		log.Printf("Error updating payment status: %v", err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update payment status",
		})
	}

	if err := pc.Gate.OnStatusSettled(ctx, payment, previousStatus); err != nil {
		return pc.gateError(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment status updated successfully",
		Data:    payment,
	})
}

func (pc *PaymentController) gateError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: err.Error(),
		})
	}
	log.Printf("Commission engine error: %v", err)
	return c.JSON(http.StatusInternalServerError, models.Response{
		Status:  http.StatusInternalServerError,
		Message: "Failed to update commission ledger",
	})
}

// findPayment loads the payment addressed by the :id route param. On failure
// it returns a handler that writes the error response.
func (pc *PaymentController) findPayment(c echo.Context) (*models.PaymentRecord, func(echo.Context) error) {
	paymentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid payment ID",
			})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var payment models.PaymentRecord
	err = pc.DB.Collection("payment_records").FindOne(ctx, bson.M{"_id": paymentID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Payment not found",
			})
		}
	}
	if err != nil {
		log.Printf("Error finding payment: %v", err)
		return nil, func(c echo.Context) error {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to retrieve payment",
			})
		}
	}
	return &payment, nil
}
