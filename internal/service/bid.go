package service

import (
	"context"
	"errors"
	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/repo/repo_errors"
)

type BidService struct {
	bidRepo  repo.Bid
	loadRepo repo.Load
	notifier Notifier
}

func NewBidService(repos *repo.Repositories, notifier Notifier) *BidService {
	return &BidService{
		bidRepo:  repos.Bid,
		loadRepo: repos.Load,
		notifier: notifier,
	}
}

func (s *BidService) PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.BidOutputModel, error) {
	load, err := s.loadRepo.GetLoadById(ctx, input.LoadId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrLoadNotFound
		}

		return nil, err
	}

	if load.Status != common.LoadPosted && load.Status != common.LoadBidding {
		return nil, ErrLoadNotOpenForBids
	}

	if load.ShipperId.String() == input.CarrierId {
		return nil, ErrShipperCannotBid
	}

	id, err := s.bidRepo.PlaceBid(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			// Two races surface as a conflict: the carrier's own active bid
			// and the load closing mid-flight. Re-read the load to tell them
			// apart.
			if current, readErr := s.loadRepo.GetLoadById(ctx, input.LoadId); readErr == nil &&
				current.Status != common.LoadPosted && current.Status != common.LoadBidding {
				return nil, ErrLoadNotOpenForBids
			}

			return nil, ErrActiveBidExists
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(load.ShipperId, "New bid on your load", "A carrier has placed a bid on your load", common.PriorityNormal, bid.Id.String())

	return mapBid(bid), nil
}

func (s *BidService) WithdrawBid(ctx context.Context, bidId string, requesterId string) (*entity.BidOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	if bid.CarrierId.String() != requesterId {
		return nil, ErrNotBidOwner
	}

	if bid.Status != common.BidPending {
		return nil, ErrBidNotPending
	}

	if err := s.bidRepo.WithdrawBid(ctx, bid.Id, bid.LoadId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrConcurrentConflict
		}

		return nil, err
	}

	if load, err := s.loadRepo.GetLoadById(ctx, bid.LoadId.String()); err == nil {
		s.notifier.Notify(load.ShipperId, "Bid withdrawn", "A carrier has withdrawn their bid on your load", common.PriorityLow, bid.Id.String())
	}

	bid, err = s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

// DecideBid applies the shipper's accept/reject decision. Accepting is the
// critical atomic operation: the repo conditions the load write on the load
// still being pre-accept, so a concurrent accept of a sibling bid loses with
// a conflict instead of silently double-committing.
func (s *BidService) DecideBid(ctx context.Context, bidId string, requesterId string, decision string) (*entity.BidOutputModel, *entity.TripOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, ErrBidNotFound
		}

		return nil, nil, err
	}

	load, err := s.loadRepo.GetLoadById(ctx, bid.LoadId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, nil, ErrLoadNotFound
		}

		return nil, nil, err
	}

	if load.ShipperId.String() != requesterId {
		return nil, nil, ErrNotLoadOwner
	}

	if bid.Status != common.BidPending {
		return nil, nil, ErrBidNotPending
	}

	if decision == common.DecisionRejected {
		if err := s.bidRepo.UpdateBidStatusById(ctx, bid.Id, common.BidPending, common.BidRejected); err != nil {
			if errors.Is(err, repo_errors.ErrConflict) {
				return nil, nil, ErrConcurrentConflict
			}

			return nil, nil, err
		}

		s.notifier.Notify(bid.CarrierId, "Bid rejected", "The shipper declined your bid", common.PriorityLow, bid.Id.String())

		bid, err = s.bidRepo.GetBidById(ctx, bidId)
		if err != nil {
			return nil, nil, err
		}

		return mapBid(bid), nil, nil
	}

	result, err := s.bidRepo.AcceptBid(ctx, bid, load.ShipperId, common.PlatformFee(bid.Amount))
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, nil, ErrConcurrentConflict
		}

		return nil, nil, err
	}

	for _, carrierId := range result.RejectedCarrierIds {
		s.notifier.Notify(carrierId, "Bid rejected", "The shipper accepted another bid on this load", common.PriorityNormal, bid.LoadId.String())
	}
	s.notifier.Notify(bid.CarrierId, "Bid accepted", "Your bid was accepted and a trip has been created", common.PriorityCritical, result.Trip.Id.String())

	bid, err = s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, nil, err
	}

	return mapBid(bid), mapTrip(&result.Trip), nil
}

func (s *BidService) GetLoadBids(ctx context.Context, loadId string, requesterId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
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

	bids, err := s.bidRepo.GetLoadBids(ctx, loadId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetCarrierBids(ctx context.Context, requesterId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	bids, err := s.bidRepo.GetCarrierBids(ctx, requesterId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}
