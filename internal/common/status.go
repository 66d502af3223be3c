package common

// Load lifecycle.
const (
	LoadPosted    = "posted"
	LoadBidding   = "bidding"
	LoadAccepted  = "accepted"
	LoadInTransit = "in_transit"
	LoadDelivered = "delivered"
	LoadCompleted = "completed"
	LoadCancelled = "cancelled"
)

// Bid lifecycle. Withdrawn is the only state a carrier can re-enter from:
// a withdrawn row is reused in place on re-bid.
const (
	BidPending   = "pending"
	BidAccepted  = "accepted"
	BidRejected  = "rejected"
	BidWithdrawn = "withdrawn"
)

// Trip lifecycle. The happy path is strictly forward; disputed is reachable
// from delivered (a filed dispute) or imposed when the parent load is
// cancelled after acceptance. The latter conflates "shipper backed out" with
// "delivery is contested"; downstream consumers key off the disputed signal,
// so the dual meaning is kept.
const (
	TripPending   = "pending"
	TripPickup    = "pickup"
	TripInTransit = "in_transit"
	TripDelivered = "delivered"
	TripConfirmed = "confirmed"
	TripDisputed  = "disputed"
)

// Dispute lifecycle.
const (
	DisputeOpen             = "open"
	DisputeCarrierResponded = "carrier_responded"
	DisputeResolved         = "resolved"
	DisputeEscalated        = "escalated"
)

// Invitation lifecycle. Advisory only: never gates bidding on an open load.
const (
	InvitationPending   = "pending"
	InvitationViewed    = "viewed"
	InvitationBidPlaced = "bid_placed"
	InvitationExpired   = "expired"
)

// Notification priorities.
const (
	PriorityCritical = "critical"
	PriorityNormal   = "normal"
	PriorityLow      = "low"
)

// Bid decisions.
const (
	DecisionAccepted = "accepted"
	DecisionRejected = "rejected"
)

// PlatformFeePermille is the platform fee applied to the agreed amount at
// acceptance time, in parts per thousand. Amounts are minor-unit integers.
const PlatformFeePermille = 50

// PlatformFee derives the fee from an agreed amount, rounding down.
func PlatformFee(amount int64) int64 {
	return amount * PlatformFeePermille / 1000
}

// NextTripStatus returns the single legal forward step of the carrier's
// advancement path, or "" when there is none. The path ends at delivered:
// confirmation is a separate shipper action.
func NextTripStatus(current string) string {
	switch current {
	case TripPending:
		return TripPickup
	case TripPickup:
		return TripInTransit
	case TripInTransit:
		return TripDelivered
	}

	return ""
}
