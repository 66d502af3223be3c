package entity

import (
	"github.com/google/uuid"
)

// db model
type Trip struct {
	Id           uuid.UUID `json:"id" db:"id"`
	LoadId       uuid.UUID `json:"loadId" db:"load_id"`
	BidId        uuid.UUID `json:"bidId" db:"bid_id"`
	CarrierId    uuid.UUID `json:"carrierId" db:"carrier_id"`
	VehicleId    uuid.UUID `json:"vehicleId" db:"vehicle_id"`
	HasVehicle   bool      `json:"hasVehicle" db:"-"`
	AgreedAmount int64     `json:"agreedAmount" db:"agreed_amount"`
	PlatformFee  int64     `json:"platformFee" db:"platform_fee"`
	TotalAmount  int64     `json:"totalAmount" db:"total_amount"`
	Status       string    `json:"status" db:"status"`
	StartedAt    string    `json:"startedAt" db:"started_at"`
	PickedUpAt   string    `json:"pickedUpAt" db:"picked_up_at"`
	DeliveredAt  string    `json:"deliveredAt" db:"delivered_at"`
	ConfirmedAt  string    `json:"confirmedAt" db:"confirmed_at"`
	PaymentRef   string    `json:"paymentRef" db:"payment_ref"`
	PaidAt       string    `json:"paidAt" db:"paid_at"`
	CreatedAt    string    `json:"createdAt" db:"created_at"`
}

// controller model
type TripOutputModel struct {
	Id           string `json:"id"`
	LoadId       string `json:"loadId"`
	BidId        string `json:"bidId"`
	CarrierId    string `json:"carrierId"`
	VehicleId    string `json:"vehicleId,omitempty"`
	AgreedAmount int64  `json:"agreedAmount"`
	PlatformFee  int64  `json:"platformFee"`
	TotalAmount  int64  `json:"totalAmount"`
	Status       string `json:"status"`
	StartedAt    string `json:"startedAt,omitempty"`
	PickedUpAt   string `json:"pickedUpAt,omitempty"`
	DeliveredAt  string `json:"deliveredAt,omitempty"`
	ConfirmedAt  string `json:"confirmedAt,omitempty"`
	PaymentRef   string `json:"paymentRef,omitempty"`
	PaidAt       string `json:"paidAt,omitempty"`
	CreatedAt    string `json:"createdAt"`
}
