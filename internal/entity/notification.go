package entity

import (
	"github.com/google/uuid"
)

// Notification is a fire-and-forget message to a user. Rows are written by
// the dispatcher worker off the request path; a failed write is logged and
// dropped, never surfaced to the operation that triggered it.
type Notification struct {
	Id        uuid.UUID `json:"id" db:"id"`
	UserId    uuid.UUID `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Priority  string    `json:"priority" db:"priority"`
	ActionRef string    `json:"actionRef" db:"action_ref"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}
