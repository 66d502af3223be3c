package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"freight-marketplace-api/internal/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	mu       sync.Mutex
	created  []entity.Notification
	createFn func(ctx context.Context, n *entity.Notification) error
}

func (f *fakeNotificationRepo) CreateNotification(ctx context.Context, n *entity.Notification) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, n); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *n)

	return nil
}

func (f *fakeNotificationRepo) all() []entity.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]entity.Notification(nil), f.created...)
}

func TestDispatcherPersistsQueued(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(repo, zap.NewNop(), 8)
	d.Start()

	userId := uuid.New()
	d.Notify(userId, "Bid accepted", "Your bid was accepted", "critical", "ref-1")
	d.Notify(userId, "Trip update", "Your trip is now pickup", "normal", "ref-2")
	d.Stop()

	created := repo.all()
	if len(created) != 2 {
		t.Fatalf("expected 2 persisted notifications, got %d", len(created))
	}
	if created[0].UserId != userId || created[0].Title != "Bid accepted" || created[0].Priority != "critical" {
		t.Fatalf("unexpected first notification: %+v", created[0])
	}
	if created[1].ActionRef != "ref-2" {
		t.Fatalf("unexpected second notification: %+v", created[1])
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := NewDispatcher(repo, zap.NewNop(), 1)

	// Worker not started: the queue holds one entry, the rest must be
	// dropped without blocking.
	for i := 0; i < 5; i++ {
		d.Notify(uuid.New(), "t", "b", "normal", "")
	}

	d.Start()
	d.Stop()

	if got := len(repo.all()); got != 1 {
		t.Fatalf("expected 1 persisted notification, got %d", got)
	}
}

func TestDispatcherSwallowsPersistFailures(t *testing.T) {
	repo := &fakeNotificationRepo{
		createFn: func(ctx context.Context, n *entity.Notification) error {
			return errors.New("db down")
		},
	}
	d := NewDispatcher(repo, zap.NewNop(), 8)
	d.Start()

	d.Notify(uuid.New(), "t", "b", "low", "")
	d.Stop()

	if got := len(repo.all()); got != 0 {
		t.Fatalf("expected no persisted notifications, got %d", got)
	}
}
