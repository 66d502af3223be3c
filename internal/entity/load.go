package entity

import (
	"github.com/google/uuid"
)

// db model
type Load struct {
	Id             uuid.UUID `json:"id" db:"id"`
	ShipperId      uuid.UUID `json:"shipperId" db:"shipper_id"`
	OriginText     string    `json:"originText" db:"origin_text"`
	OriginCity     string    `json:"originCity" db:"origin_city"`
	OriginState    string    `json:"originState" db:"origin_state"`
	DestText       string    `json:"destText" db:"dest_text"`
	DestCity       string    `json:"destCity" db:"dest_city"`
	DestState      string    `json:"destState" db:"dest_state"`
	CargoType      string    `json:"cargoType" db:"cargo_type"`
	CargoWeightKg  int       `json:"cargoWeightKg" db:"cargo_weight_kg"`
	BudgetAmount   int64     `json:"budgetAmount" db:"budget_amount"`
	Negotiable     bool      `json:"negotiable" db:"negotiable"`
	PickupDate     string    `json:"pickupDate" db:"pickup_date"`
	DeliveryDate   string    `json:"deliveryDate" db:"delivery_date"`
	Status         string    `json:"status" db:"status"`
	BidCount       int       `json:"bidCount" db:"bid_count"`
	AcceptedBidId  uuid.UUID `json:"acceptedBidId" db:"accepted_bid_id"`
	HasAcceptedBid bool      `json:"hasAcceptedBid" db:"-"`
	CreatedAt      string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateLoadInput struct {
	ShipperId     string // given
	OriginText    string // given
	OriginCity    string // given
	OriginState   string // given
	DestText      string // given
	DestCity      string // given
	DestState     string // given
	CargoType     string // given
	CargoWeightKg int    // given
	BudgetAmount  int64  // given, minor units, 0 when unset
	Negotiable    bool   // given
	PickupDate    string // given
	DeliveryDate  string // given
	// Status should be set: "posted"
	// Id and CreatedAt set automatically
}

// Only descriptor fields are patchable; status and accepted_bid_id are owned
// by the specialized transitions. Empty string / zero means "leave as is".
type UpdateLoadInput struct {
	OriginText   string
	DestText     string
	CargoType    string
	BudgetAmount int64
	PickupDate   string
	DeliveryDate string
}

type LoadFilter struct {
	Status      string
	ShipperId   string
	OriginCity  string
	DestCity    string
	CargoType   string
}

// controller model
type LoadOutputModel struct {
	Id            string `json:"id"`
	ShipperId     string `json:"shipperId"`
	OriginText    string `json:"originText"`
	OriginCity    string `json:"originCity"`
	OriginState   string `json:"originState"`
	DestText      string `json:"destText"`
	DestCity      string `json:"destCity"`
	DestState     string `json:"destState"`
	CargoType     string `json:"cargoType"`
	CargoWeightKg int    `json:"cargoWeightKg"`
	BudgetAmount  int64  `json:"budgetAmount"`
	Negotiable    bool   `json:"negotiable"`
	PickupDate    string `json:"pickupDate"`
	DeliveryDate  string `json:"deliveryDate"`
	Status        string `json:"status"`
	BidCount      int    `json:"bidCount"`
	AcceptedBidId string `json:"acceptedBidId,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// listLoads projection: page plus a stable total for pagination.
type LoadPage struct {
	Items []LoadOutputModel `json:"items"`
	Total int               `json:"total"`
}
