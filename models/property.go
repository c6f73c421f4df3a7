package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a rentable unit owned by a landlord. Its commission policy
// fields drive how much of each collected payment the agent keeps. An empty
// CommissionType means no commission applies to payments on this property.
type Property struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LandlordID primitive.ObjectID `bson:"landlordId" json:"landlordId"`
	Name       string             `bson:"name" json:"name"`
	Address    string             `bson:"address" json:"address"`
	City       string             `bson:"city,omitempty" json:"city,omitempty"`
	UnitCount  int                `bson:"unitCount,omitempty" json:"unitCount,omitempty"`

	CommissionType        string  `bson:"commissionType,omitempty" json:"commissionType,omitempty"`
	CommissionRate        float64 `bson:"commissionRate,omitempty" json:"commissionRate,omitempty"`
	CommissionFixedAmount float64 `bson:"commissionFixedAmount,omitempty" json:"commissionFixedAmount,omitempty"`
	// Platform fee for individual (non-agency) agents; nil means the platform
	// default applies.
	PlatformFeePercent *float64 `bson:"platformFeePercent,omitempty" json:"platformFeePercent,omitempty"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreatePropertyRequest is the payload for registering a property.
type CreatePropertyRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city,omitempty"`
	UnitCount int    `json:"unitCount,omitempty"`

	CommissionType        string   `json:"commissionType,omitempty" validate:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT"`
	CommissionRate        float64  `json:"commissionRate,omitempty"`
	CommissionFixedAmount float64  `json:"commissionFixedAmount,omitempty"`
	PlatformFeePercent    *float64 `json:"platformFeePercent,omitempty"`
}

// UpdateCommissionPolicyRequest changes a property's commission policy.
// Existing commission records keep their historical settings; only future
// first-time computations see the new values.
type UpdateCommissionPolicyRequest struct {
	CommissionType        string   `json:"commissionType" validate:"omitempty,oneof=PERCENTAGE FIXED_AMOUNT"`
	CommissionRate        float64  `json:"commissionRate,omitempty"`
	CommissionFixedAmount float64  `json:"commissionFixedAmount,omitempty"`
	PlatformFeePercent    *float64 `json:"platformFeePercent,omitempty"`
}
