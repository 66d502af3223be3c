package entity

import (
	"github.com/google/uuid"
)

// AddressRecord is a row in the shared address-quality dataset. Confirmed
// deliveries enrich it: a fuzzy match on (text, city, state) increments the
// delivery counter and recomputes the bounded confidence score, a miss
// inserts a new low-confidence row.
type AddressRecord struct {
	Id            uuid.UUID `json:"id" db:"id"`
	Text          string    `json:"text" db:"text"`
	Landmark      string    `json:"landmark" db:"landmark"`
	City          string    `json:"city" db:"city"`
	State         string    `json:"state" db:"state"`
	DeliveryCount int       `json:"deliveryCount" db:"delivery_count"`
	Confidence    int       `json:"confidence" db:"confidence"`
}
