package service

import (
	"context"
	"errors"
	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/repo/repo_errors"
)

type DisputeService struct {
	disputeRepo repo.Dispute
	tripRepo    repo.Trip
	loadRepo    repo.Load
	notifier    Notifier
}

func NewDisputeService(repos *repo.Repositories, notifier Notifier) *DisputeService {
	return &DisputeService{
		disputeRepo: repos.Dispute,
		tripRepo:    repos.Trip,
		loadRepo:    repos.Load,
		notifier:    notifier,
	}
}

func (s *DisputeService) FileDispute(ctx context.Context, input *entity.FileDisputeInput) (*entity.DisputeOutputModel, error) {
	trip, err := s.tripRepo.GetTripById(ctx, input.TripId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrTripNotFound
		}

		return nil, err
	}

	load, err := s.loadRepo.GetLoadById(ctx, trip.LoadId.String())
	if err != nil {
		return nil, err
	}

	if load.ShipperId.String() != input.ShipperId {
		return nil, ErrNotLoadOwner
	}

	if trip.Status != common.TripDelivered && trip.Status != common.TripConfirmed {
		return nil, ErrTripNotDisputable
	}

	id, err := s.disputeRepo.CreateDispute(ctx, input, trip.LoadId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrDisputeAlreadyExists
		}

		return nil, err
	}

	s.notifier.Notify(trip.CarrierId, "Dispute filed", "The shipper has disputed the delivered trip", common.PriorityCritical, id.String())

	dispute, err := s.disputeRepo.GetDisputeById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapDispute(dispute), nil
}

func (s *DisputeService) Respond(ctx context.Context, disputeId string, requesterId string, response string) (*entity.DisputeOutputModel, error) {
	dispute, err := s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDisputeNotFound
		}

		return nil, err
	}

	trip, err := s.tripRepo.GetTripById(ctx, dispute.TripId.String())
	if err != nil {
		return nil, err
	}

	if trip.CarrierId.String() != requesterId {
		return nil, ErrNotAssignedCarrier
	}

	if dispute.Status != common.DisputeOpen {
		return nil, ErrDisputeNotOpen
	}

	if err := s.disputeRepo.RespondDispute(ctx, dispute.Id, trip.Id, trip.CarrierId, response); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	s.notifier.Notify(dispute.FiledBy, "Carrier responded", "The carrier has responded to your dispute", common.PriorityNormal, disputeId)

	dispute, err = s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		return nil, err
	}

	return mapDispute(dispute), nil
}

// Resolve closes the dispute in the shipper's favor of acceptance: the trip
// returns to confirmed and the load completes, whether or not the carrier
// ever responded.
func (s *DisputeService) Resolve(ctx context.Context, disputeId string, requesterId string, note string) (*entity.DisputeOutputModel, error) {
	dispute, err := s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDisputeNotFound
		}

		return nil, err
	}

	if dispute.FiledBy.String() != requesterId {
		return nil, ErrNotDisputeFiler
	}

	if dispute.Status != common.DisputeOpen && dispute.Status != common.DisputeCarrierResponded {
		return nil, ErrDisputeClosed
	}

	if note == "" {
		note = "resolved by shipper"
	}

	if err := s.disputeRepo.ResolveDispute(ctx, dispute.Id, dispute.TripId, dispute.LoadId, dispute.FiledBy, note); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	if trip, err := s.tripRepo.GetTripById(ctx, dispute.TripId.String()); err == nil {
		s.notifier.Notify(trip.CarrierId, "Dispute resolved", note, common.PriorityNormal, disputeId)
	}

	dispute, err = s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		return nil, err
	}

	return mapDispute(dispute), nil
}

// Escalate hands the dispute to out-of-band review. Terminal for this engine;
// the trip and load are left untouched.
func (s *DisputeService) Escalate(ctx context.Context, disputeId string, requesterId string) (*entity.DisputeOutputModel, error) {
	dispute, err := s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDisputeNotFound
		}

		return nil, err
	}

	if dispute.FiledBy.String() != requesterId {
		return nil, ErrNotDisputeFiler
	}

	if dispute.Status != common.DisputeOpen && dispute.Status != common.DisputeCarrierResponded {
		return nil, ErrDisputeClosed
	}

	if err := s.disputeRepo.EscalateDispute(ctx, dispute.Id, dispute.TripId, dispute.FiledBy); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	if trip, err := s.tripRepo.GetTripById(ctx, dispute.TripId.String()); err == nil {
		s.notifier.Notify(trip.CarrierId, "Dispute escalated", "The dispute has been escalated for manual review", common.PriorityCritical, disputeId)
	}

	dispute, err = s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		return nil, err
	}

	return mapDispute(dispute), nil
}

func (s *DisputeService) GetDisputeById(ctx context.Context, disputeId string, requesterId string) (*entity.DisputeOutputModel, error) {
	dispute, err := s.disputeRepo.GetDisputeById(ctx, disputeId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrDisputeNotFound
		}

		return nil, err
	}

	trip, err := s.tripRepo.GetTripById(ctx, dispute.TripId.String())
	if err != nil {
		return nil, err
	}

	if dispute.FiledBy.String() != requesterId && trip.CarrierId.String() != requesterId {
		return nil, ErrNotTripParticipant
	}

	return mapDispute(dispute), nil
}
