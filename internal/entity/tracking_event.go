package entity

import (
	"github.com/google/uuid"
)

// db model. Append-only: rows are never updated or deleted, ordering is
// creation-time ordering.
type TrackingEvent struct {
	Id        uuid.UUID `json:"id" db:"id"`
	TripId    uuid.UUID `json:"tripId" db:"trip_id"`
	EventType string    `json:"eventType" db:"event_type"`
	Note      string    `json:"note" db:"note"`
	ActorId   uuid.UUID `json:"actorId" db:"actor_id"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// controller model
type TrackingEventOutputModel struct {
	Id        string `json:"id"`
	TripId    string `json:"tripId"`
	EventType string `json:"eventType"`
	Note      string `json:"note,omitempty"`
	ActorId   string `json:"actorId,omitempty"`
	CreatedAt string `json:"createdAt"`
}
