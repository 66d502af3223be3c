package service

import "errors"

// Sentinels are grouped by the error kind the controllers map to an HTTP
// status: not-found, forbidden, invalid-state, invalid-transition, conflict.

var (
	ErrLoadNotFound       = errors.New("load not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrTripNotFound       = errors.New("trip not found")
	ErrDisputeNotFound    = errors.New("dispute not found")
	ErrInvitationNotFound = errors.New("invitation not found")

	ErrNotLoadOwner       = errors.New("requester is not the shipper who owns the load")
	ErrNotBidOwner        = errors.New("requester is not the carrier who placed the bid")
	ErrNotAssignedCarrier = errors.New("requester is not the carrier assigned to the trip")
	ErrNotTripParticipant = errors.New("requester is neither the trip's shipper nor its carrier")
	ErrNotDisputeFiler    = errors.New("requester is not the shipper who filed the dispute")
	ErrNotInvitedCarrier  = errors.New("requester is not the invited carrier")
	ErrShipperCannotBid   = errors.New("a shipper can't bid on their own load")

	ErrLoadNotOpenForBids   = errors.New("load is not open for bidding")
	ErrLoadNotCancellable   = errors.New("load can't be cancelled once fulfillment is in transit or closed")
	ErrBidNotPending        = errors.New("bid is not pending")
	ErrTripNotDisputable    = errors.New("trip can be disputed only after delivery")
	ErrTripNotConfirmable   = errors.New("trip is not awaiting delivery confirmation")
	ErrDisputeNotOpen       = errors.New("dispute is not open")
	ErrDisputeClosed        = errors.New("dispute has already been resolved or escalated")
	ErrInvitationNotPending = errors.New("invitation is not pending")

	ErrInvalidTripTransition = errors.New("requested status is not the next step of the trip lifecycle")

	ErrActiveBidExists         = errors.New("carrier already has an active bid on this load")
	ErrDisputeAlreadyExists    = errors.New("a dispute already exists for this trip")
	ErrInvitationAlreadyExists = errors.New("carrier has already been invited to this load")
	ErrConcurrentConflict      = errors.New("entity changed concurrently, operation aborted")

	ErrNoNewChanges = errors.New("no new values")
)
