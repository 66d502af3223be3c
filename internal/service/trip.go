package service

import (
	"context"
	"errors"
	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/repo/repo_errors"
)

// redeliveryNote is the system-supplied resolution applied when a shipper
// confirms delivery while a dispute is still open.
const redeliveryNote = "redelivery/confirmation accepted"

type TripService struct {
	tripRepo repo.Trip
	loadRepo repo.Load
	notifier Notifier
	enricher AddressEnricher
}

func NewTripService(repos *repo.Repositories, notifier Notifier, enricher AddressEnricher) *TripService {
	return &TripService{
		tripRepo: repos.Trip,
		loadRepo: repos.Load,
		notifier: notifier,
		enricher: enricher,
	}
}

func (s *TripService) getVisibleTrip(ctx context.Context, tripId string, requesterId string) (*entity.Trip, *entity.Load, error) {
	trip, err := s.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, ErrTripNotFound
		}

		return nil, nil, err
	}

	load, err := s.loadRepo.GetLoadById(ctx, trip.LoadId.String())
	if err != nil {
		return nil, nil, err
	}

	if trip.CarrierId.String() != requesterId && load.ShipperId.String() != requesterId {
		return nil, nil, ErrNotTripParticipant
	}

	return trip, load, nil
}

func (s *TripService) GetTripById(ctx context.Context, tripId string, requesterId string) (*entity.TripOutputModel, error) {
	trip, _, err := s.getVisibleTrip(ctx, tripId, requesterId)
	if err != nil {
		return nil, err
	}

	return mapTrip(trip), nil
}

func (s *TripService) GetCarrierTrips(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.TripOutputModel, error) {
	trips, err := s.tripRepo.GetCarrierTrips(ctx, requesterId, pg)
	if err != nil {
		return nil, err
	}

	return mapTrips(trips), nil
}

func (s *TripService) GetShipperTrips(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.TripOutputModel, error) {
	trips, err := s.tripRepo.GetShipperTrips(ctx, requesterId, pg)
	if err != nil {
		return nil, err
	}

	return mapTrips(trips), nil
}

// loadSyncFor maps a trip transition to the load status it drags along.
func loadSyncFor(nextStatus string) string {
	switch nextStatus {
	case common.TripInTransit:
		return common.LoadInTransit
	case common.TripDelivered:
		return common.LoadDelivered
	}

	return ""
}

// AdvanceStatus moves the trip one step along the delivery state machine.
// Only the assigned carrier may advance; the requested status must be exactly
// the forward edge from the current one. The path ends at delivered, so a
// carrier cannot reach confirmed through here.
func (s *TripService) AdvanceStatus(ctx context.Context, tripId string, requesterId string, nextStatus string) (*entity.TripOutputModel, error) {
	trip, load, err := s.getVisibleTrip(ctx, tripId, requesterId)
	if err != nil {
		return nil, err
	}

	if trip.CarrierId.String() != requesterId {
		return nil, ErrNotAssignedCarrier
	}

	expected := common.NextTripStatus(trip.Status)
	if expected == "" || nextStatus != expected {
		return nil, ErrInvalidTripTransition
	}

	if err := s.tripRepo.AdvanceTripStatus(ctx, trip.Id, trip.Status, nextStatus, loadSyncFor(nextStatus), trip.CarrierId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	switch nextStatus {
	case common.TripDelivered:
		s.notifier.Notify(load.ShipperId, "Delivery awaiting confirmation", "Your cargo has been delivered; please confirm", common.PriorityCritical, tripId)
	default:
		s.notifier.Notify(load.ShipperId, "Trip update", "Your trip is now "+nextStatus, common.PriorityNormal, tripId)
	}

	trip, err = s.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		return nil, err
	}

	return mapTrip(trip), nil
}

// ConfirmDelivery is the shipper-scoped closure action. Valid from delivered,
// or from disputed when the shipper accepts a redelivery, in which case the
// open dispute is auto-resolved inside the same transaction.
func (s *TripService) ConfirmDelivery(ctx context.Context, tripId string, requesterId string) (*entity.TripOutputModel, error) {
	trip, load, err := s.getVisibleTrip(ctx, tripId, requesterId)
	if err != nil {
		return nil, err
	}

	if load.ShipperId.String() != requesterId {
		return nil, ErrNotLoadOwner
	}

	if trip.Status != common.TripDelivered && trip.Status != common.TripDisputed {
		return nil, ErrTripNotConfirmable
	}

	// A trip forced to disputed by a cancellation has nothing to confirm:
	// the cancelled load is terminal and must not complete.
	if load.Status == common.LoadCancelled {
		return nil, ErrTripNotConfirmable
	}

	result, err := s.tripRepo.ConfirmTrip(ctx, trip.Id, trip.LoadId, load.ShipperId, redeliveryNote)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	s.notifier.Notify(trip.CarrierId, "Delivery confirmed", "The shipper confirmed the delivery", common.PriorityNormal, tripId)
	if result.DisputeAutoResolved {
		s.notifier.Notify(trip.CarrierId, "Dispute resolved", redeliveryNote, common.PriorityNormal, result.AutoResolvedDisputeId.String())
	}

	s.enrichAddresses(load)

	trip, err = s.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		return nil, err
	}

	return mapTrip(trip), nil
}

// enrichAddresses feeds both trip endpoints into the address-quality dataset.
// Best effort: the enricher swallows its own failures.
func (s *TripService) enrichAddresses(load *entity.Load) {
	s.enricher.Enrich(load.OriginText, "", load.OriginCity, load.OriginState)
	s.enricher.Enrich(load.DestText, "", load.DestCity, load.DestState)
}

func (s *TripService) GetTrackingEvents(ctx context.Context, tripId string, requesterId string, pg *entity.PaginationInput) ([]entity.TrackingEventOutputModel, error) {
	if _, _, err := s.getVisibleTrip(ctx, tripId, requesterId); err != nil {
		return nil, err
	}

	events, err := s.tripRepo.GetTrackingEvents(ctx, tripId, pg)
	if err != nil {
		return nil, err
	}

	return mapTrackingEvents(events), nil
}
