package service

import (
	"context"
	"errors"
	"testing"

	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"freight-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
)

func newBidServiceWith(bidRepo repo.Bid, loadRepo repo.Load, notifier Notifier) *BidService {
	return NewBidService(&repo.Repositories{Bid: bidRepo, Load: loadRepo}, notifier)
}

func TestPlaceBidClosedLoad(t *testing.T) {
	shipperId := uuid.New()

	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"accepted", common.LoadAccepted, ErrLoadNotOpenForBids},
		{"in transit", common.LoadInTransit, ErrLoadNotOpenForBids},
		{"cancelled", common.LoadCancelled, ErrLoadNotOpenForBids},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loadRepo := &fakeLoadRepo{
				getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
					return &entity.Load{Id: uuid.New(), ShipperId: shipperId, Status: tt.status}, nil
				},
			}
			s := newBidServiceWith(&fakeBidRepo{}, loadRepo, &recordingNotifier{})

			_, err := s.PlaceBid(context.Background(), &entity.PlaceBidInput{LoadId: uuid.NewString(), CarrierId: uuid.NewString(), Amount: 1000})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPlaceBidOwnLoad(t *testing.T) {
	shipperId := uuid.New()
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: shipperId, Status: common.LoadPosted}, nil
		},
	}
	s := newBidServiceWith(&fakeBidRepo{}, loadRepo, &recordingNotifier{})

	_, err := s.PlaceBid(context.Background(), &entity.PlaceBidInput{LoadId: uuid.NewString(), CarrierId: shipperId.String(), Amount: 1000})
	if !errors.Is(err, ErrShipperCannotBid) {
		t.Fatalf("expected ErrShipperCannotBid, got %v", err)
	}
}

func TestPlaceBidDuplicate(t *testing.T) {
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: uuid.New(), Status: common.LoadBidding}, nil
		},
	}
	bidRepo := &fakeBidRepo{
		placeBidFn: func(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
			return uuid.Nil, repo_errors.ErrConflict
		},
	}
	s := newBidServiceWith(bidRepo, loadRepo, &recordingNotifier{})

	_, err := s.PlaceBid(context.Background(), &entity.PlaceBidInput{LoadId: uuid.NewString(), CarrierId: uuid.NewString(), Amount: 1000})
	if !errors.Is(err, ErrActiveBidExists) {
		t.Fatalf("expected ErrActiveBidExists, got %v", err)
	}
}

func TestPlaceBidLoadClosedMidFlight(t *testing.T) {
	reads := 0
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			reads++
			status := common.LoadBidding
			if reads > 1 {
				status = common.LoadAccepted
			}
			return &entity.Load{Id: uuid.New(), ShipperId: uuid.New(), Status: status}, nil
		},
	}
	bidRepo := &fakeBidRepo{
		placeBidFn: func(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
			return uuid.Nil, repo_errors.ErrConflict
		},
	}
	s := newBidServiceWith(bidRepo, loadRepo, &recordingNotifier{})

	_, err := s.PlaceBid(context.Background(), &entity.PlaceBidInput{LoadId: uuid.NewString(), CarrierId: uuid.NewString(), Amount: 1000})
	if !errors.Is(err, ErrLoadNotOpenForBids) {
		t.Fatalf("expected ErrLoadNotOpenForBids, got %v", err)
	}
}

func TestPlaceBidNotifiesShipper(t *testing.T) {
	shipperId := uuid.New()
	bidId := uuid.New()
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: shipperId, Status: common.LoadPosted}, nil
		},
	}
	bidRepo := &fakeBidRepo{
		placeBidFn: func(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
			return bidId, nil
		},
		getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
			return &entity.Bid{Id: bidId, Status: common.BidPending, Amount: 1000}, nil
		},
	}
	notifier := &recordingNotifier{}
	s := newBidServiceWith(bidRepo, loadRepo, notifier)

	bid, err := s.PlaceBid(context.Background(), &entity.PlaceBidInput{LoadId: uuid.NewString(), CarrierId: uuid.NewString(), Amount: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bid.Id != bidId.String() {
		t.Fatalf("unexpected bid id %s", bid.Id)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].userId != shipperId {
		t.Fatalf("expected one shipper notification, got %+v", notifier.sent)
	}
}

func TestDecideBidNotOwner(t *testing.T) {
	bidId := uuid.New()
	bidRepo := &fakeBidRepo{
		getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
			return &entity.Bid{Id: bidId, LoadId: uuid.New(), CarrierId: uuid.New(), Status: common.BidPending}, nil
		},
	}
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: uuid.New(), Status: common.LoadBidding}, nil
		},
	}
	s := newBidServiceWith(bidRepo, loadRepo, &recordingNotifier{})

	_, _, err := s.DecideBid(context.Background(), bidId.String(), uuid.NewString(), common.DecisionAccepted)
	if !errors.Is(err, ErrNotLoadOwner) {
		t.Fatalf("expected ErrNotLoadOwner, got %v", err)
	}
}

func TestDecideBidNotPending(t *testing.T) {
	shipperId := uuid.New()
	bidId := uuid.New()
	bidRepo := &fakeBidRepo{
		getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
			return &entity.Bid{Id: bidId, LoadId: uuid.New(), Status: common.BidWithdrawn}, nil
		},
	}
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: shipperId, Status: common.LoadBidding}, nil
		},
	}
	s := newBidServiceWith(bidRepo, loadRepo, &recordingNotifier{})

	_, _, err := s.DecideBid(context.Background(), bidId.String(), shipperId.String(), common.DecisionAccepted)
	if !errors.Is(err, ErrBidNotPending) {
		t.Fatalf("expected ErrBidNotPending, got %v", err)
	}
}

func TestDecideBidReject(t *testing.T) {
	shipperId := uuid.New()
	carrierId := uuid.New()
	bidId := uuid.New()

	rejected := false
	bidRepo := &fakeBidRepo{
		getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
			status := common.BidPending
			if rejected {
				status = common.BidRejected
			}
			return &entity.Bid{Id: bidId, LoadId: uuid.New(), CarrierId: carrierId, Status: status}, nil
		},
		updateBidStatusFn: func(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error {
			if fromStatus != common.BidPending || toStatus != common.BidRejected {
				t.Fatalf("unexpected transition %s -> %s", fromStatus, toStatus)
			}
			rejected = true
			return nil
		},
	}
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: shipperId, Status: common.LoadBidding}, nil
		},
	}
	notifier := &recordingNotifier{}
	s := newBidServiceWith(bidRepo, loadRepo, notifier)

	bid, trip, err := s.DecideBid(context.Background(), bidId.String(), shipperId.String(), common.DecisionRejected)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip != nil {
		t.Fatal("reject must not create a trip")
	}
	if bid.Status != common.BidRejected {
		t.Fatalf("expected rejected bid, got %s", bid.Status)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].userId != carrierId || notifier.sent[0].priority != common.PriorityLow {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
}

func TestDecideBidAccept(t *testing.T) {
	shipperId := uuid.New()
	carrierId := uuid.New()
	loadId := uuid.New()
	bidId := uuid.New()
	tripId := uuid.New()
	loser := uuid.New()

	accepted := false
	bidRepo := &fakeBidRepo{
		getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
			status := common.BidPending
			if accepted {
				status = common.BidAccepted
			}
			return &entity.Bid{Id: bidId, LoadId: loadId, CarrierId: carrierId, Amount: 10000, Status: status}, nil
		},
		acceptBidFn: func(ctx context.Context, bid *entity.Bid, sid uuid.UUID, platformFee int64) (*entity.AcceptBidResult, error) {
			if sid != shipperId {
				t.Fatalf("unexpected shipper id %s", sid)
			}
			if platformFee != 500 {
				t.Fatalf("expected fee 500 for amount 10000, got %d", platformFee)
			}
			accepted = true
			return &entity.AcceptBidResult{
				Trip: entity.Trip{
					Id: tripId, LoadId: loadId, BidId: bidId, CarrierId: carrierId,
					AgreedAmount: 10000, PlatformFee: 500, TotalAmount: 10500, Status: common.TripPending,
				},
				RejectedCarrierIds: []uuid.UUID{loser},
			}, nil
		},
	}
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: loadId, ShipperId: shipperId, Status: common.LoadBidding}, nil
		},
	}
	notifier := &recordingNotifier{}
	s := newBidServiceWith(bidRepo, loadRepo, notifier)

	bid, trip, err := s.DecideBid(context.Background(), bidId.String(), shipperId.String(), common.DecisionAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bid.Status != common.BidAccepted {
		t.Fatalf("expected accepted bid, got %s", bid.Status)
	}
	if trip == nil || trip.Id != tripId.String() || trip.TotalAmount != 10500 {
		t.Fatalf("unexpected trip: %+v", trip)
	}

	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifier.sent))
	}
	if notifier.sent[0].userId != loser || notifier.sent[0].priority != common.PriorityNormal {
		t.Fatalf("unexpected loser notification: %+v", notifier.sent[0])
	}
	if notifier.sent[1].userId != carrierId || notifier.sent[1].priority != common.PriorityCritical {
		t.Fatalf("unexpected winner notification: %+v", notifier.sent[1])
	}
}

func TestDecideBidAcceptRace(t *testing.T) {
	shipperId := uuid.New()
	bidId := uuid.New()
	bidRepo := &fakeBidRepo{
		getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
			return &entity.Bid{Id: bidId, LoadId: uuid.New(), CarrierId: uuid.New(), Amount: 1000, Status: common.BidPending}, nil
		},
		acceptBidFn: func(ctx context.Context, bid *entity.Bid, sid uuid.UUID, platformFee int64) (*entity.AcceptBidResult, error) {
			return nil, repo_errors.ErrConflict
		},
	}
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: shipperId, Status: common.LoadBidding}, nil
		},
	}
	s := newBidServiceWith(bidRepo, loadRepo, &recordingNotifier{})

	_, _, err := s.DecideBid(context.Background(), bidId.String(), shipperId.String(), common.DecisionAccepted)
	if !errors.Is(err, ErrConcurrentConflict) {
		t.Fatalf("expected ErrConcurrentConflict, got %v", err)
	}
}

func TestWithdrawBidGuards(t *testing.T) {
	carrierId := uuid.New()
	bidId := uuid.New()

	tests := []struct {
		name      string
		requester string
		status    string
		wantErr   error
	}{
		{"wrong carrier", uuid.NewString(), common.BidPending, ErrNotBidOwner},
		{"already accepted", carrierId.String(), common.BidAccepted, ErrBidNotPending},
		{"already withdrawn", carrierId.String(), common.BidWithdrawn, ErrBidNotPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bidRepo := &fakeBidRepo{
				getBidFn: func(ctx context.Context, id string) (*entity.Bid, error) {
					return &entity.Bid{Id: bidId, LoadId: uuid.New(), CarrierId: carrierId, Status: tt.status}, nil
				},
			}
			s := newBidServiceWith(bidRepo, &fakeLoadRepo{}, &recordingNotifier{})

			_, err := s.WithdrawBid(context.Background(), bidId.String(), tt.requester)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetLoadBidsOwnerOnly(t *testing.T) {
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: uuid.New(), ShipperId: uuid.New(), Status: common.LoadBidding}, nil
		},
	}
	s := newBidServiceWith(&fakeBidRepo{}, loadRepo, &recordingNotifier{})

	_, err := s.GetLoadBids(context.Background(), uuid.NewString(), uuid.NewString(), entity.NewPaginationInput(10, 0))
	if !errors.Is(err, ErrNotLoadOwner) {
		t.Fatalf("expected ErrNotLoadOwner, got %v", err)
	}
}
