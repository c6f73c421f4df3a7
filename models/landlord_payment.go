package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Landlord payout status values
const (
	PayoutStatusPending   = "PENDING"
	PayoutStatusProcessed = "PROCESSED"
	PayoutStatusPaid      = "PAID"
	PayoutStatusCancelled = "CANCELLED"
)

// Payout adjustment types
const (
	AdjustmentTypeAddition  = "addition"
	AdjustmentTypeDeduction = "deduction"
)

// PayoutAdjustment is a manual correction applied to a landlord payout
// (repair deduction, goodwill credit, ...).
type PayoutAdjustment struct {
	Type      string    `bson:"type" json:"type"`
	Label     string    `bson:"label" json:"label"`
	Amount    float64   `bson:"amount" json:"amount"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// LandlordPayment is the payout owed to the landlord for one collected
// payment: the payment total minus the agent's gross commission, plus any
// manual adjustments. One per CommissionRecord, mutated in lockstep with it.
type LandlordPayment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CommissionRecordID primitive.ObjectID `bson:"commissionRecordId" json:"commissionRecordId"`
	PaymentRecordID    primitive.ObjectID `bson:"paymentRecordId" json:"paymentRecordId"`
	LandlordID         primitive.ObjectID `bson:"landlordId" json:"landlordId"`

	GrossAmount float64            `bson:"grossAmount" json:"grossAmount"`
	NetAmount   float64            `bson:"netAmount" json:"netAmount"`
	Adjustments []PayoutAdjustment `bson:"adjustments,omitempty" json:"adjustments,omitempty"`

	Status      string     `bson:"status" json:"status"`
	ProcessedAt *time.Time `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	PaidAt      *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// PayoutAdjustmentRequest adds a manual adjustment to a payout.
type PayoutAdjustmentRequest struct {
	Type   string  `json:"type" validate:"required,oneof=addition deduction"`
	Label  string  `json:"label" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
