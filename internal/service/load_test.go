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

func newLoadServiceWith(loadRepo repo.Load, notifier Notifier) *LoadService {
	return NewLoadService(&repo.Repositories{Load: loadRepo}, notifier)
}

func TestUpdateLoadEmptyPatch(t *testing.T) {
	s := newLoadServiceWith(&fakeLoadRepo{}, &recordingNotifier{})

	_, err := s.UpdateLoad(context.Background(), uuid.NewString(), uuid.NewString(), &entity.UpdateLoadInput{})
	if !errors.Is(err, ErrNoNewChanges) {
		t.Fatalf("expected ErrNoNewChanges, got %v", err)
	}
}

func TestUpdateLoadNotOwner(t *testing.T) {
	shipperId := uuid.New()
	loadId := uuid.New()
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: loadId, ShipperId: shipperId, Status: common.LoadPosted}, nil
		},
	}
	s := newLoadServiceWith(loadRepo, &recordingNotifier{})

	_, err := s.UpdateLoad(context.Background(), loadId.String(), uuid.NewString(), &entity.UpdateLoadInput{CargoType: "furniture"})
	if !errors.Is(err, ErrNotLoadOwner) {
		t.Fatalf("expected ErrNotLoadOwner, got %v", err)
	}
}

func TestCancelLoadGuards(t *testing.T) {
	shipperId := uuid.New()
	loadId := uuid.New()

	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"in transit", common.LoadInTransit, ErrLoadNotCancellable},
		{"delivered", common.LoadDelivered, ErrLoadNotCancellable},
		{"completed", common.LoadCompleted, ErrLoadNotCancellable},
		{"already cancelled", common.LoadCancelled, ErrLoadNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loadRepo := &fakeLoadRepo{
				getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
					return &entity.Load{Id: loadId, ShipperId: shipperId, Status: tt.status}, nil
				},
			}
			s := newLoadServiceWith(loadRepo, &recordingNotifier{})

			_, err := s.CancelLoad(context.Background(), loadId.String(), shipperId.String())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCancelLoadNotFound(t *testing.T) {
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return nil, repo_errors.ErrNotFound
		},
	}
	s := newLoadServiceWith(loadRepo, &recordingNotifier{})

	_, err := s.CancelLoad(context.Background(), uuid.NewString(), uuid.NewString())
	if !errors.Is(err, ErrLoadNotFound) {
		t.Fatalf("expected ErrLoadNotFound, got %v", err)
	}
}

func TestCancelLoadCascadeNotifications(t *testing.T) {
	shipperId := uuid.New()
	loadId := uuid.New()
	tripId := uuid.New()
	tripCarrier := uuid.New()
	rejected := []uuid.UUID{uuid.New(), uuid.New()}

	cancelled := false
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			status := common.LoadAccepted
			if cancelled {
				status = common.LoadCancelled
			}
			return &entity.Load{Id: loadId, ShipperId: shipperId, Status: status}, nil
		},
		cancelLoadFn: func(ctx context.Context, id uuid.UUID) (*entity.CancelLoadResult, error) {
			cancelled = true
			return &entity.CancelLoadResult{
				RejectedCarrierIds: rejected,
				DisputedTrip:       &entity.Trip{Id: tripId, LoadId: loadId, CarrierId: tripCarrier, Status: common.TripDisputed},
			}, nil
		},
	}

	notifier := &recordingNotifier{}
	s := newLoadServiceWith(loadRepo, notifier)

	load, err := s.CancelLoad(context.Background(), loadId.String(), shipperId.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if load.Status != common.LoadCancelled {
		t.Fatalf("expected cancelled load, got %s", load.Status)
	}

	if len(notifier.sent) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifier.sent))
	}
	for i, carrierId := range rejected {
		if notifier.sent[i].userId != carrierId || notifier.sent[i].priority != common.PriorityNormal {
			t.Fatalf("unexpected rejection notification: %+v", notifier.sent[i])
		}
	}
	last := notifier.sent[2]
	if last.userId != tripCarrier || last.priority != common.PriorityCritical || last.actionRef != tripId.String() {
		t.Fatalf("unexpected disputed-trip notification: %+v", last)
	}
}

func TestCancelLoadConcurrentConflict(t *testing.T) {
	shipperId := uuid.New()
	loadId := uuid.New()
	loadRepo := &fakeLoadRepo{
		getLoadFn: func(ctx context.Context, id string) (*entity.Load, error) {
			return &entity.Load{Id: loadId, ShipperId: shipperId, Status: common.LoadBidding}, nil
		},
		cancelLoadFn: func(ctx context.Context, id uuid.UUID) (*entity.CancelLoadResult, error) {
			return nil, repo_errors.ErrConflict
		},
	}
	s := newLoadServiceWith(loadRepo, &recordingNotifier{})

	_, err := s.CancelLoad(context.Background(), loadId.String(), shipperId.String())
	if !errors.Is(err, ErrConcurrentConflict) {
		t.Fatalf("expected ErrConcurrentConflict, got %v", err)
	}
}

func TestListLoadsKeepsTotal(t *testing.T) {
	loadRepo := &fakeLoadRepo{
		listLoadsFn: func(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) ([]entity.Load, int, error) {
			return []entity.Load{{Id: uuid.New(), Status: common.LoadPosted}}, 42, nil
		},
	}
	s := newLoadServiceWith(loadRepo, &recordingNotifier{})

	page, err := s.ListLoads(context.Background(), &entity.LoadFilter{}, entity.NewPaginationInput(1, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 42 || len(page.Items) != 1 {
		t.Fatalf("unexpected page: total=%d items=%d", page.Total, len(page.Items))
	}
}
