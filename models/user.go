package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types
const (
	UserTypeAdmin    = "admin"
	UserTypeLandlord = "landlord"
	UserTypeAgent    = "agent"
	UserTypeAgency   = "agency"
	UserTypeTenant   = "tenant"
)

// User is an account on the platform. UserType drives route-level access.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	FullName string             `bson:"fullName" json:"fullName"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	UserType string             `bson:"userType" json:"userType"`

	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthRequest models
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	UserType string `json:"userType" validate:"required,oneof=landlord agent agency tenant"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
