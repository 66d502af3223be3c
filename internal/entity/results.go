package entity

import (
	"github.com/google/uuid"
)

// CancelLoadResult reports the side effects of the cancellation cascade so
// the service can fan out notifications after the transaction commits.
type CancelLoadResult struct {
	RejectedCarrierIds []uuid.UUID
	DisputedTrip       *Trip
}

// AcceptBidResult reports the outcome of the atomic accept operation.
type AcceptBidResult struct {
	Trip               Trip
	RejectedCarrierIds []uuid.UUID
}

// ConfirmTripResult reports whether an open dispute was auto-resolved
// alongside the confirmation.
type ConfirmTripResult struct {
	AutoResolvedDisputeId uuid.UUID
	DisputeAutoResolved   bool
}
