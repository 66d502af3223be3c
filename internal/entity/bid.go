package entity

import (
	"github.com/google/uuid"
)

// db model
type Bid struct {
	Id             uuid.UUID `json:"id" db:"id"`
	LoadId         uuid.UUID `json:"loadId" db:"load_id"`
	CarrierId      uuid.UUID `json:"carrierId" db:"carrier_id"`
	VehicleId      uuid.UUID `json:"vehicleId" db:"vehicle_id"`
	HasVehicle     bool      `json:"hasVehicle" db:"-"`
	Amount         int64     `json:"amount" db:"amount"`
	EstimatedHours int       `json:"estimatedHours" db:"estimated_hours"`
	Message        string    `json:"message" db:"message"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type PlaceBidInput struct {
	LoadId         string // given
	CarrierId      string // given
	VehicleId      string // given, optional
	Amount         int64  // given, minor units
	EstimatedHours int    // given, optional
	Message        string // given, optional
	// Status should be set: "pending"
	// Id and CreatedAt set automatically
}

// controller model
type BidOutputModel struct {
	Id             string `json:"id"`
	LoadId         string `json:"loadId"`
	CarrierId      string `json:"carrierId"`
	VehicleId      string `json:"vehicleId,omitempty"`
	Amount         int64  `json:"amount"`
	EstimatedHours int    `json:"estimatedHours,omitempty"`
	Message        string `json:"message,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}
