package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lease status values
const (
	LeaseStatusActive     = "active"
	LeaseStatusTerminated = "terminated"
)

// Lease binds a tenant, a landlord, an agent and optionally an agency to a
// property. When an agency is involved, AgencyCommissionRate is the agency's
// share (percent) of the commission remaining after the platform fee.
type Lease struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID  `bson:"propertyId" json:"propertyId"`
	TenantID   primitive.ObjectID  `bson:"tenantId" json:"tenantId"`
	LandlordID primitive.ObjectID  `bson:"landlordId" json:"landlordId"`
	AgentID    primitive.ObjectID  `bson:"agentId" json:"agentId"`
	AgencyID   *primitive.ObjectID `bson:"agencyId,omitempty" json:"agencyId,omitempty"`

	AgencyEnabled        bool    `bson:"agencyEnabled" json:"agencyEnabled"`
	AgencyCommissionRate float64 `bson:"agencyCommissionRate,omitempty" json:"agencyCommissionRate,omitempty"`

	RentAmount float64   `bson:"rentAmount" json:"rentAmount"`
	StartDate  time.Time `bson:"startDate" json:"startDate"`
	EndDate    time.Time `bson:"endDate" json:"endDate"`
	Status     string    `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateLeaseRequest is the payload for creating a lease.
type CreateLeaseRequest struct {
	PropertyID           string    `json:"propertyId" validate:"required"`
	TenantID             string    `json:"tenantId" validate:"required"`
	AgentID              string    `json:"agentId" validate:"required"`
	AgencyID             string    `json:"agencyId,omitempty"`
	AgencyCommissionRate float64   `json:"agencyCommissionRate,omitempty"`
	RentAmount           float64   `json:"rentAmount" validate:"required,gt=0"`
	StartDate            time.Time `json:"startDate" validate:"required"`
	EndDate              time.Time `json:"endDate" validate:"required"`
}
