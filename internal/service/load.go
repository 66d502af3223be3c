package service

import (
	"context"
	"errors"
	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/repo/repo_errors"
)

type LoadService struct {
	loadRepo repo.Load
	notifier Notifier
}

func NewLoadService(repos *repo.Repositories, notifier Notifier) *LoadService {
	return &LoadService{
		loadRepo: repos.Load,
		notifier: notifier,
	}
}

func (s *LoadService) CreateLoad(ctx context.Context, input *entity.CreateLoadInput) (*entity.LoadOutputModel, error) {
	id, err := s.loadRepo.CreateLoad(ctx, input)
	if err != nil {
		return nil, err
	}

	load, err := s.loadRepo.GetLoadById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapLoad(load), nil
}

func (s *LoadService) GetLoadById(ctx context.Context, loadId string) (*entity.LoadOutputModel, error) {
	load, err := s.loadRepo.GetLoadById(ctx, loadId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLoadNotFound
		}

		return nil, err
	}

	return mapLoad(load), nil
}

func (s *LoadService) ListLoads(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) (*entity.LoadPage, error) {
	loads, total, err := s.loadRepo.ListLoads(ctx, filter, pg)
	if err != nil {
		return nil, err
	}

	return &entity.LoadPage{Items: mapLoads(loads), Total: total}, nil
}

func (s *LoadService) UpdateLoad(ctx context.Context, loadId string, requesterId string, patch *entity.UpdateLoadInput) (*entity.LoadOutputModel, error) {
	if *patch == (entity.UpdateLoadInput{}) {
		return nil, ErrNoNewChanges
	}

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

	if err := s.loadRepo.UpdateLoad(ctx, loadId, patch); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLoadNotFound
		}

		return nil, err
	}

	load, err = s.loadRepo.GetLoadById(ctx, loadId)
	if err != nil {
		return nil, err
	}

	return mapLoad(load), nil
}

// CancelLoad runs the cancellation cascade. Loads already in transit or
// closed cannot be unwound; a load that had reached accepted drags its trip
// to disputed and the carrier is told at critical priority.
func (s *LoadService) CancelLoad(ctx context.Context, loadId string, requesterId string) (*entity.LoadOutputModel, error) {
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

	switch load.Status {
	case common.LoadInTransit, common.LoadDelivered, common.LoadCompleted, common.LoadCancelled:
		return nil, ErrLoadNotCancellable
	}

	result, err := s.loadRepo.CancelLoad(ctx, load.Id)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	for _, carrierId := range result.RejectedCarrierIds {
		s.notifier.Notify(carrierId, "Load cancelled", "The load you bid on was cancelled by the shipper", common.PriorityNormal, loadId)
	}
	if result.DisputedTrip != nil {
		s.notifier.Notify(result.DisputedTrip.CarrierId, "Trip disputed",
			"The shipper cancelled the load after acceptance; the trip has been marked disputed",
			common.PriorityCritical, result.DisputedTrip.Id.String())
	}

	load, err = s.loadRepo.GetLoadById(ctx, loadId)
	if err != nil {
		return nil, err
	}

	return mapLoad(load), nil
}
