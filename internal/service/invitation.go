package service

import (
	"context"
	"errors"
	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

// Invitations are advisory funnel telemetry for the shipper. They never gate
// whether a carrier can bid on an open load.
type InvitationService struct {
	invitationRepo repo.Invitation
	loadRepo       repo.Load
	notifier       Notifier
}

func NewInvitationService(repos *repo.Repositories, notifier Notifier) *InvitationService {
	return &InvitationService{
		invitationRepo: repos.Invitation,
		loadRepo:       repos.Load,
		notifier:       notifier,
	}
}

func (s *InvitationService) Invite(ctx context.Context, loadId string, requesterId string, carrierId string) (*entity.InvitationOutputModel, error) {
	load, err := s.loadRepo.GetLoadById(ctx, loadId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLoadNotFound
		}

		return nil, err
	}

	if load.ShipperId.String() != requesterId {
		return nil, ErrNotLoadOwner
	}

	if load.Status != common.LoadPosted && load.Status != common.LoadBidding {
		return nil, ErrLoadNotOpenForBids
	}

	carrierUuid, err := uuid.Parse(carrierId)
	if err != nil {
		return nil, ErrInvitationNotFound
	}

	id, err := s.invitationRepo.CreateInvitation(ctx, load.Id, load.ShipperId, carrierUuid)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrInvitationAlreadyExists
		}

		return nil, err
	}

	s.notifier.Notify(carrierUuid, "Bid invitation", "A shipper invited you to bid on their load", common.PriorityNormal, loadId)

	invitation, err := s.invitationRepo.GetInvitationById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapInvitation(invitation), nil
}

func (s *InvitationService) MarkViewed(ctx context.Context, invitationId string, requesterId string) (*entity.InvitationOutputModel, error) {
	invitation, err := s.invitationRepo.GetInvitationById(ctx, invitationId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}

		return nil, err
	}

	if invitation.CarrierId.String() != requesterId {
		return nil, ErrNotInvitedCarrier
	}

	if invitation.Status != common.InvitationPending {
		return nil, ErrInvitationNotPending
	}

	if err := s.invitationRepo.UpdateInvitationStatusById(ctx, invitation.Id, common.InvitationPending, common.InvitationViewed); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	invitation, err = s.invitationRepo.GetInvitationById(ctx, invitationId)
	if err != nil {
		return nil, err
	}

	return mapInvitation(invitation), nil
}

func (s *InvitationService) GetLoadInvitations(ctx context.Context, loadId string, requesterId string, pg *entity.PaginationInput) ([]entity.InvitationOutputModel, error) {
	load, err := s.loadRepo.GetLoadById(ctx, loadId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLoadNotFound
		}

		return nil, err
	}

	if load.ShipperId.String() != requesterId {
		return nil, ErrNotLoadOwner
	}

	invitations, err := s.invitationRepo.GetLoadInvitations(ctx, loadId, pg)
	if err != nil {
		return nil, err
	}

	return mapInvitations(invitations), nil
}

func (s *InvitationService) GetCarrierInvitations(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.InvitationOutputModel, error) {
	invitations, err := s.invitationRepo.GetCarrierInvitations(ctx, requesterId, pg)
	if err != nil {
		return nil, err
	}

	return mapInvitations(invitations), nil
}
