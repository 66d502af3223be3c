package repo

import (
	"context"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo/pgdb"
	"freight-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Load interface {
	CreateLoad(ctx context.Context, input *entity.CreateLoadInput) (uuid.UUID, error)
	GetLoadById(ctx context.Context, id string) (*entity.Load, error)
	ListLoads(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) ([]entity.Load, int, error)
	UpdateLoad(ctx context.Context, id string, patch *entity.UpdateLoadInput) error
	CancelLoad(ctx context.Context, loadId uuid.UUID) (*entity.CancelLoadResult, error)
}

type Bid interface {
	PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetLoadBids(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetCarrierBids(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	UpdateBidStatusById(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error
	WithdrawBid(ctx context.Context, bidId uuid.UUID, loadId uuid.UUID) error
	AcceptBid(ctx context.Context, bid *entity.Bid, shipperId uuid.UUID, platformFee int64) (*entity.AcceptBidResult, error)
}

type Trip interface {
	GetTripById(ctx context.Context, id string) (*entity.Trip, error)
	GetTripByLoadId(ctx context.Context, loadId string) (*entity.Trip, error)
	GetCarrierTrips(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Trip, error)
	GetShipperTrips(ctx context.Context, shipperId string, pg *entity.PaginationInput) ([]entity.Trip, error)
	AdvanceTripStatus(ctx context.Context, tripId uuid.UUID, fromStatus string, toStatus string, loadStatus string, actorId uuid.UUID) error
	ConfirmTrip(ctx context.Context, tripId uuid.UUID, loadId uuid.UUID, actorId uuid.UUID, autoResolveNote string) (*entity.ConfirmTripResult, error)
	GetTrackingEvents(ctx context.Context, tripId string, pg *entity.PaginationInput) ([]entity.TrackingEvent, error)
}

type Dispute interface {
	CreateDispute(ctx context.Context, input *entity.FileDisputeInput, loadId uuid.UUID) (uuid.UUID, error)
	GetDisputeById(ctx context.Context, id string) (*entity.Dispute, error)
	GetDisputeByTripId(ctx context.Context, tripId string) (*entity.Dispute, error)
	RespondDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, carrierId uuid.UUID, response string) error
	ResolveDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, loadId uuid.UUID, resolverId uuid.UUID, note string) error
	EscalateDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, actorId uuid.UUID) error
}

type Invitation interface {
	CreateInvitation(ctx context.Context, loadId uuid.UUID, shipperId uuid.UUID, carrierId uuid.UUID) (uuid.UUID, error)
	GetInvitationById(ctx context.Context, id string) (*entity.BidInvitation, error)
	GetLoadInvitations(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error)
	GetCarrierInvitations(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error)
	UpdateInvitationStatusById(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error
}

type Notification interface {
	CreateNotification(ctx context.Context, n *entity.Notification) error
}

type Address interface {
	GetAddressCandidates(ctx context.Context, city string, state string) ([]entity.AddressRecord, error)
	RecordAddressDelivery(ctx context.Context, id uuid.UUID, confidence int) error
	InsertAddress(ctx context.Context, record *entity.AddressRecord) (uuid.UUID, error)
}

type Repositories struct {
	Diagnostics
	Load
	Bid
	Trip
	Dispute
	Invitation
	Notification
	Address
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics:  pgdb.NewDiagnosticsRepo(p),
		Load:         pgdb.NewLoadRepo(p),
		Bid:          pgdb.NewBidRepo(p),
		Trip:         pgdb.NewTripRepo(p),
		Dispute:      pgdb.NewDisputeRepo(p),
		Invitation:   pgdb.NewInvitationRepo(p),
		Notification: pgdb.NewNotificationRepo(p),
		Address:      pgdb.NewAddressRepo(p),
	}
}
