package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Commission record status values
const (
	CommissionStatusPending   = "PENDING"
	CommissionStatusPaid      = "PAID"
	CommissionStatusCancelled = "CANCELLED"
)

// Property commission policy types
const (
	CommissionTypePercentage  = "PERCENTAGE"
	CommissionTypeFixedAmount = "FIXED_AMOUNT"
)

// HistoricalSettings freezes the policy values a commission was computed
// under. Once stored it wins over live configuration on every recompute, so
// later policy edits never silently rewrite an existing ledger row.
type HistoricalSettings struct {
	CommissionType        string  `bson:"commissionType" json:"commissionType"`
	CommissionRate        float64 `bson:"commissionRate" json:"commissionRate"`
	CommissionFixedAmount float64 `bson:"commissionFixedAmount" json:"commissionFixedAmount"`
	PlatformFeePercent    float64 `bson:"platformFeePercent" json:"platformFeePercent"`

	AgencyEnabled                bool    `bson:"agencyEnabled" json:"agencyEnabled"`
	AgencyPlatformFeeType        string  `bson:"agencyPlatformFeeType,omitempty" json:"agencyPlatformFeeType,omitempty"`
	AgencyPlatformFeePercent     float64 `bson:"agencyPlatformFeePercent,omitempty" json:"agencyPlatformFeePercent,omitempty"`
	AgencyPlatformFeeFixedAmount float64 `bson:"agencyPlatformFeeFixedAmount,omitempty" json:"agencyPlatformFeeFixedAmount,omitempty"`
	AgencyCommissionRate         float64 `bson:"agencyCommissionRate,omitempty" json:"agencyCommissionRate,omitempty"`

	CapturedAt time.Time `bson:"capturedAt" json:"capturedAt"`
}

// CommissionRecord holds the itemized split of one collected payment between
// agent, optional agency, platform and landlord. One per PaymentRecord,
// created lazily on the first qualifying computation, never deleted, only
// transitioned to CANCELLED. All numeric fields are written exclusively by
// the commission ledger service.
type CommissionRecord struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PaymentRecordID primitive.ObjectID  `bson:"paymentRecordId" json:"paymentRecordId"`
	LeaseID         primitive.ObjectID  `bson:"leaseId" json:"leaseId"`
	PropertyID      primitive.ObjectID  `bson:"propertyId" json:"propertyId"`
	LandlordID      primitive.ObjectID  `bson:"landlordId" json:"landlordId"`
	AgentID         primitive.ObjectID  `bson:"agentId" json:"agentId"`
	AgencyID        *primitive.ObjectID `bson:"agencyId,omitempty" json:"agencyId,omitempty"`

	TotalPaymentAmount   float64 `bson:"totalPaymentAmount" json:"totalPaymentAmount"`
	AgentGrossCommission float64 `bson:"agentGrossCommission" json:"agentGrossCommission"`
	AgentPlatformFee     float64 `bson:"agentPlatformFee" json:"agentPlatformFee"`
	AgentNetCommission   float64 `bson:"agentNetCommission" json:"agentNetCommission"`

	AgencyEnabled         bool    `bson:"agencyEnabled" json:"agencyEnabled"`
	AgencyGrossCommission float64 `bson:"agencyGrossCommission" json:"agencyGrossCommission"`
	AgencyPlatformFee     float64 `bson:"agencyPlatformFee" json:"agencyPlatformFee"`
	AgencyNetCommission   float64 `bson:"agencyNetCommission" json:"agencyNetCommission"`

	PlatformCommission float64 `bson:"platformCommission" json:"platformCommission"`
	LandlordNetAmount  float64 `bson:"landlordNetAmount" json:"landlordNetAmount"`

	HistoricalSettings *HistoricalSettings `bson:"historicalSettings,omitempty" json:"historicalSettings,omitempty"`

	Status    string     `bson:"status" json:"status"`
	PaidAt    *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}
