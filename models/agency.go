package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Agency platform-fee policy types (same vocabulary as property commission
// types).
const (
	AgencyFeeTypePercentage  = "PERCENTAGE"
	AgencyFeeTypeFixedAmount = "FIXED_AMOUNT"
)

// Agency represents a brokerage that agents can work under. Its platform-fee
// policy determines the platform's cut of commissions collected through it.
type Agency struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Name   string             `bson:"name" json:"name"`
	Phone  string             `bson:"phone,omitempty" json:"phone,omitempty"`

	PlatformFeeType        string  `bson:"platformFeeType,omitempty" json:"platformFeeType,omitempty"`
	PlatformFeePercent     float64 `bson:"platformFeePercent,omitempty" json:"platformFeePercent,omitempty"`
	PlatformFeeFixedAmount float64 `bson:"platformFeeFixedAmount,omitempty" json:"platformFeeFixedAmount,omitempty"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
