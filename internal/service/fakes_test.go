package service

import (
	"context"

	"freight-marketplace-api/internal/entity"

	"github.com/google/uuid"
)

// Hand-written fakes over the repo interfaces. Each method delegates to a
// function field so tests only wire what they use.

type fakeLoadRepo struct {
	createLoadFn func(ctx context.Context, input *entity.CreateLoadInput) (uuid.UUID, error)
	getLoadFn    func(ctx context.Context, id string) (*entity.Load, error)
	listLoadsFn  func(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) ([]entity.Load, int, error)
	updateLoadFn func(ctx context.Context, id string, patch *entity.UpdateLoadInput) error
	cancelLoadFn func(ctx context.Context, loadId uuid.UUID) (*entity.CancelLoadResult, error)
}

func (f *fakeLoadRepo) CreateLoad(ctx context.Context, input *entity.CreateLoadInput) (uuid.UUID, error) {
	return f.createLoadFn(ctx, input)
}

func (f *fakeLoadRepo) GetLoadById(ctx context.Context, id string) (*entity.Load, error) {
	return f.getLoadFn(ctx, id)
}

func (f *fakeLoadRepo) ListLoads(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) ([]entity.Load, int, error) {
	return f.listLoadsFn(ctx, filter, pg)
}

func (f *fakeLoadRepo) UpdateLoad(ctx context.Context, id string, patch *entity.UpdateLoadInput) error {
	return f.updateLoadFn(ctx, id, patch)
}

func (f *fakeLoadRepo) CancelLoad(ctx context.Context, loadId uuid.UUID) (*entity.CancelLoadResult, error) {
	return f.cancelLoadFn(ctx, loadId)
}

type fakeBidRepo struct {
	placeBidFn        func(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error)
	getBidFn          func(ctx context.Context, id string) (*entity.Bid, error)
	getLoadBidsFn     func(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	getCarrierBidsFn  func(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	updateBidStatusFn func(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error
	withdrawBidFn     func(ctx context.Context, bidId uuid.UUID, loadId uuid.UUID) error
	acceptBidFn       func(ctx context.Context, bid *entity.Bid, shipperId uuid.UUID, platformFee int64) (*entity.AcceptBidResult, error)
}

func (f *fakeBidRepo) PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
	return f.placeBidFn(ctx, input)
}

func (f *fakeBidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	return f.getBidFn(ctx, id)
}

func (f *fakeBidRepo) GetLoadBids(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	return f.getLoadBidsFn(ctx, loadId, pg)
}

func (f *fakeBidRepo) GetCarrierBids(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	return f.getCarrierBidsFn(ctx, carrierId, pg)
}

func (f *fakeBidRepo) UpdateBidStatusById(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error {
	return f.updateBidStatusFn(ctx, id, fromStatus, toStatus)
}

func (f *fakeBidRepo) WithdrawBid(ctx context.Context, bidId uuid.UUID, loadId uuid.UUID) error {
	return f.withdrawBidFn(ctx, bidId, loadId)
}

func (f *fakeBidRepo) AcceptBid(ctx context.Context, bid *entity.Bid, shipperId uuid.UUID, platformFee int64) (*entity.AcceptBidResult, error) {
	return f.acceptBidFn(ctx, bid, shipperId, platformFee)
}

type fakeTripRepo struct {
	getTripFn           func(ctx context.Context, id string) (*entity.Trip, error)
	getTripByLoadFn     func(ctx context.Context, loadId string) (*entity.Trip, error)
	getCarrierTripsFn   func(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Trip, error)
	getShipperTripsFn   func(ctx context.Context, shipperId string, pg *entity.PaginationInput) ([]entity.Trip, error)
	advanceTripFn       func(ctx context.Context, tripId uuid.UUID, fromStatus string, toStatus string, loadStatus string, actorId uuid.UUID) error
	confirmTripFn       func(ctx context.Context, tripId uuid.UUID, loadId uuid.UUID, actorId uuid.UUID, autoResolveNote string) (*entity.ConfirmTripResult, error)
	getTrackingEventsFn func(ctx context.Context, tripId string, pg *entity.PaginationInput) ([]entity.TrackingEvent, error)
}

func (f *fakeTripRepo) GetTripById(ctx context.Context, id string) (*entity.Trip, error) {
	return f.getTripFn(ctx, id)
}

func (f *fakeTripRepo) GetTripByLoadId(ctx context.Context, loadId string) (*entity.Trip, error) {
	return f.getTripByLoadFn(ctx, loadId)
}

func (f *fakeTripRepo) GetCarrierTrips(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Trip, error) {
	return f.getCarrierTripsFn(ctx, carrierId, pg)
}

func (f *fakeTripRepo) GetShipperTrips(ctx context.Context, shipperId string, pg *entity.PaginationInput) ([]entity.Trip, error) {
	return f.getShipperTripsFn(ctx, shipperId, pg)
}

func (f *fakeTripRepo) AdvanceTripStatus(ctx context.Context, tripId uuid.UUID, fromStatus string, toStatus string, loadStatus string, actorId uuid.UUID) error {
	return f.advanceTripFn(ctx, tripId, fromStatus, toStatus, loadStatus, actorId)
}

func (f *fakeTripRepo) ConfirmTrip(ctx context.Context, tripId uuid.UUID, loadId uuid.UUID, actorId uuid.UUID, autoResolveNote string) (*entity.ConfirmTripResult, error) {
	return f.confirmTripFn(ctx, tripId, loadId, actorId, autoResolveNote)
}

func (f *fakeTripRepo) GetTrackingEvents(ctx context.Context, tripId string, pg *entity.PaginationInput) ([]entity.TrackingEvent, error) {
	return f.getTrackingEventsFn(ctx, tripId, pg)
}

type fakeDisputeRepo struct {
	createDisputeFn   func(ctx context.Context, input *entity.FileDisputeInput, loadId uuid.UUID) (uuid.UUID, error)
	getDisputeFn      func(ctx context.Context, id string) (*entity.Dispute, error)
	getByTripFn       func(ctx context.Context, tripId string) (*entity.Dispute, error)
	respondDisputeFn  func(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, carrierId uuid.UUID, response string) error
	resolveDisputeFn  func(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, loadId uuid.UUID, resolverId uuid.UUID, note string) error
	escalateDisputeFn func(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, actorId uuid.UUID) error
}

func (f *fakeDisputeRepo) CreateDispute(ctx context.Context, input *entity.FileDisputeInput, loadId uuid.UUID) (uuid.UUID, error) {
	return f.createDisputeFn(ctx, input, loadId)
}

func (f *fakeDisputeRepo) GetDisputeById(ctx context.Context, id string) (*entity.Dispute, error) {
	return f.getDisputeFn(ctx, id)
}

func (f *fakeDisputeRepo) GetDisputeByTripId(ctx context.Context, tripId string) (*entity.Dispute, error) {
	return f.getByTripFn(ctx, tripId)
}

func (f *fakeDisputeRepo) RespondDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, carrierId uuid.UUID, response string) error {
	return f.respondDisputeFn(ctx, disputeId, tripId, carrierId, response)
}

func (f *fakeDisputeRepo) ResolveDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, loadId uuid.UUID, resolverId uuid.UUID, note string) error {
	return f.resolveDisputeFn(ctx, disputeId, tripId, loadId, resolverId, note)
}

func (f *fakeDisputeRepo) EscalateDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, actorId uuid.UUID) error {
	return f.escalateDisputeFn(ctx, disputeId, tripId, actorId)
}

type fakeInvitationRepo struct {
	createInvitationFn func(ctx context.Context, loadId uuid.UUID, shipperId uuid.UUID, carrierId uuid.UUID) (uuid.UUID, error)
	getInvitationFn    func(ctx context.Context, id string) (*entity.BidInvitation, error)
	getLoadInvsFn      func(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error)
	getCarrierInvsFn   func(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error)
	updateInvStatusFn  func(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error
}

func (f *fakeInvitationRepo) CreateInvitation(ctx context.Context, loadId uuid.UUID, shipperId uuid.UUID, carrierId uuid.UUID) (uuid.UUID, error) {
	return f.createInvitationFn(ctx, loadId, shipperId, carrierId)
}

func (f *fakeInvitationRepo) GetInvitationById(ctx context.Context, id string) (*entity.BidInvitation, error) {
	return f.getInvitationFn(ctx, id)
}

func (f *fakeInvitationRepo) GetLoadInvitations(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error) {
	return f.getLoadInvsFn(ctx, loadId, pg)
}

func (f *fakeInvitationRepo) GetCarrierInvitations(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error) {
	return f.getCarrierInvsFn(ctx, carrierId, pg)
}

func (f *fakeInvitationRepo) UpdateInvitationStatusById(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error {
	return f.updateInvStatusFn(ctx, id, fromStatus, toStatus)
}

type sentNotification struct {
	userId    uuid.UUID
	title     string
	body      string
	priority  string
	actionRef string
}

type recordingNotifier struct {
	sent []sentNotification
}

func (n *recordingNotifier) Notify(userId uuid.UUID, title string, body string, priority string, actionRef string) {
	n.sent = append(n.sent, sentNotification{userId: userId, title: title, body: body, priority: priority, actionRef: actionRef})
}

type recordingEnricher struct {
	texts []string
}

func (e *recordingEnricher) Enrich(text string, landmark string, city string, state string) {
	e.texts = append(e.texts, text)
}
