package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values. The transition to/from PAID is the only one the
// commission engine reacts to.
const (
	PaymentStatusPending       = "PENDING"
	PaymentStatusSent          = "SENT"
	PaymentStatusPartiallyPaid = "PARTIALLY_PAID"
	PaymentStatusPaid          = "PAID"
	PaymentStatusCancelled     = "CANCELLED"
)

// Payment types
const (
	PaymentTypeRent    = "rent"
	PaymentTypeDeposit = "deposit"
	PaymentTypeFee     = "fee"
)

// ExtraCharge is an itemized charge billed on top of the base amount
// (late fee, utilities, parking, ...).
type ExtraCharge struct {
	Label  string  `bson:"label" json:"label"`
	Amount float64 `bson:"amount" json:"amount"`
}

// PaymentRecord is a billable obligation tied to a lease. It is owned by the
// leasing flows; the commission engine only reads it and maintains the two
// ledger back-links below.
type PaymentRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LeaseID    primitive.ObjectID `bson:"leaseId" json:"leaseId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	TenantID   primitive.ObjectID `bson:"tenantId" json:"tenantId"`
	LandlordID primitive.ObjectID `bson:"landlordId" json:"landlordId"`
	AgentID    primitive.ObjectID `bson:"agentId" json:"agentId"`

	Type         string        `bson:"type" json:"type"`
	Reference    string        `bson:"reference" json:"reference"`
	Amount       float64       `bson:"amount" json:"amount"`
	ExtraCharges []ExtraCharge `bson:"extraCharges,omitempty" json:"extraCharges,omitempty"`
	DueDate      *time.Time    `bson:"dueDate,omitempty" json:"dueDate,omitempty"`

	Status     string     `bson:"status" json:"status"`
	PaidAmount float64    `bson:"paidAmount" json:"paidAmount"`
	PaidAt     *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`

	// Cached ledger links. The forward links on the ledger records
	// (CommissionRecord.PaymentRecordID, LandlordPayment.PaymentRecordID) are
	// the source of truth; readers must fall back to those when these are unset.
	CommissionRecordID *primitive.ObjectID `bson:"commissionRecordId,omitempty" json:"commissionRecordId,omitempty"`
	LandlordPaymentID  *primitive.ObjectID `bson:"landlordPaymentId,omitempty" json:"landlordPaymentId,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TotalAmount returns the billed amount plus all extra charges.
func (p *PaymentRecord) TotalAmount() float64 {
	total := p.Amount
	for _, charge := range p.ExtraCharges {
		total += charge.Amount
	}
	return total
}

// CreatePaymentRequest is the payload for creating a payment on a lease.
type CreatePaymentRequest struct {
	LeaseID      string        `json:"leaseId" validate:"required"`
	Type         string        `json:"type" validate:"required,oneof=rent deposit fee"`
	Amount       float64       `json:"amount" validate:"required,gt=0"`
	ExtraCharges []ExtraCharge `json:"extraCharges,omitempty"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
}

// UpdatePaymentAmountRequest amends the billed amount and/or extra charges.
type UpdatePaymentAmountRequest struct {
	Amount       float64       `json:"amount" validate:"required,gt=0"`
	ExtraCharges []ExtraCharge `json:"extraCharges,omitempty"`
}

// UpdatePaymentStatusRequest moves a payment through its lifecycle.
type UpdatePaymentStatusRequest struct {
	Status     string  `json:"status" validate:"required,oneof=PENDING SENT PARTIALLY_PAID PAID CANCELLED"`
	PaidAmount float64 `json:"paidAmount,omitempty"`
}
