package notify

import (
	"context"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const persistTimeout = 5 * time.Second

// Dispatcher is the fire-and-forget notification side channel. Requests are
// queued on a bounded channel and persisted by a single worker; a full queue
// or a failed write is logged and dropped, never surfaced to the operation
// that triggered it.
type Dispatcher struct {
	notificationRepo repo.Notification
	log              *zap.Logger
	queue            chan entity.Notification
	done             chan struct{}
}

func NewDispatcher(notificationRepo repo.Notification, log *zap.Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}

	return &Dispatcher{
		notificationRepo: notificationRepo,
		log:              log.Named("notify"),
		queue:            make(chan entity.Notification, queueSize),
		done:             make(chan struct{}),
	}
}

// Start launches the worker goroutine. It drains the queue until Stop closes it.
func (d *Dispatcher) Start() {
	go func() {
		defer close(d.done)
		for n := range d.queue {
			d.persist(n)
		}
	}()
}

// Stop closes the queue and waits for the worker to drain what is left.
func (d *Dispatcher) Stop() {
	close(d.queue)
	<-d.done
}

func (d *Dispatcher) persist(n entity.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := d.notificationRepo.CreateNotification(ctx, &n); err != nil {
		d.log.Warn("notification dropped",
			zap.String("user_id", n.UserId.String()),
			zap.String("priority", n.Priority),
			zap.Error(err))
	}
}

// Notify enqueues without blocking; when the queue is full the notification
// is dropped and logged.
func (d *Dispatcher) Notify(userId uuid.UUID, title string, body string, priority string, actionRef string) {
	n := entity.Notification{
		UserId:    userId,
		Title:     title,
		Body:      body,
		Priority:  priority,
		ActionRef: actionRef,
	}

	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, dropping",
			zap.String("user_id", userId.String()),
			zap.String("priority", priority))
	}
}
