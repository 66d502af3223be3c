package service

import (
	"context"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

// Notifier is the fire-and-forget notification side channel. Implementations
// must never block the caller or surface failures back into it.
type Notifier interface {
	Notify(userId uuid.UUID, title string, body string, priority string, actionRef string)
}

// AddressEnricher is the best-effort address-quality side channel, fed by
// confirmed deliveries.
type AddressEnricher interface {
	Enrich(text string, landmark string, city string, state string)
}

type Load interface {
	CreateLoad(ctx context.Context, input *entity.CreateLoadInput) (*entity.LoadOutputModel, error)
	GetLoadById(ctx context.Context, loadId string) (*entity.LoadOutputModel, error)
	ListLoads(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) (*entity.LoadPage, error)
	UpdateLoad(ctx context.Context, loadId string, requesterId string, patch *entity.UpdateLoadInput) (*entity.LoadOutputModel, error)
	CancelLoad(ctx context.Context, loadId string, requesterId string) (*entity.LoadOutputModel, error)
}

type Bid interface {
	PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.BidOutputModel, error)
	WithdrawBid(ctx context.Context, bidId string, requesterId string) (*entity.BidOutputModel, error)
	DecideBid(ctx context.Context, bidId string, requesterId string, decision string) (*entity.BidOutputModel, *entity.TripOutputModel, error)
	GetLoadBids(ctx context.Context, loadId string, requesterId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetCarrierBids(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
}

type Trip interface {
	GetTripById(ctx context.Context, tripId string, requesterId string) (*entity.TripOutputModel, error)
	GetCarrierTrips(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.TripOutputModel, error)
	GetShipperTrips(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.TripOutputModel, error)
	AdvanceStatus(ctx context.Context, tripId string, requesterId string, nextStatus string) (*entity.TripOutputModel, error)
	ConfirmDelivery(ctx context.Context, tripId string, requesterId string) (*entity.TripOutputModel, error)
	GetTrackingEvents(ctx context.Context, tripId string, requesterId string, pg *entity.PaginationInput) ([]entity.TrackingEventOutputModel, error)
}

type Dispute interface {
	FileDispute(ctx context.Context, input *entity.FileDisputeInput) (*entity.DisputeOutputModel, error)
	Respond(ctx context.Context, disputeId string, requesterId string, response string) (*entity.DisputeOutputModel, error)
	Resolve(ctx context.Context, disputeId string, requesterId string, note string) (*entity.DisputeOutputModel, error)
	Escalate(ctx context.Context, disputeId string, requesterId string) (*entity.DisputeOutputModel, error)
	GetDisputeById(ctx context.Context, disputeId string, requesterId string) (*entity.DisputeOutputModel, error)
}

type Invitation interface {
	Invite(ctx context.Context, loadId string, requesterId string, carrierId string) (*entity.InvitationOutputModel, error)
	MarkViewed(ctx context.Context, invitationId string, requesterId string) (*entity.InvitationOutputModel, error)
	GetLoadInvitations(ctx context.Context, loadId string, requesterId string, pg *entity.PaginationInput) ([]entity.InvitationOutputModel, error)
	GetCarrierInvitations(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.InvitationOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Load        Load
	Bid         Bid
	Trip        Trip
	Dispute     Dispute
	Invitation  Invitation
}

func NewServices(repos *repo.Repositories, notifier Notifier, enricher AddressEnricher) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Load:        NewLoadService(repos, notifier),
		Bid:         NewBidService(repos, notifier),
		Trip:        NewTripService(repos, notifier, enricher),
		Dispute:     NewDisputeService(repos, notifier),
		Invitation:  NewInvitationService(repos, notifier),
	}
}
