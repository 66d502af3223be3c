package entity

import (
	"github.com/google/uuid"
)

// db model
type BidInvitation struct {
	Id        uuid.UUID `json:"id" db:"id"`
	LoadId    uuid.UUID `json:"loadId" db:"load_id"`
	ShipperId uuid.UUID `json:"shipperId" db:"shipper_id"`
	CarrierId uuid.UUID `json:"carrierId" db:"carrier_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// controller model
type InvitationOutputModel struct {
	Id        string `json:"id"`
	LoadId    string `json:"loadId"`
	ShipperId string `json:"shipperId"`
	CarrierId string `json:"carrierId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
