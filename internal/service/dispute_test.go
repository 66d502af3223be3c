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

func newDisputeServiceWith(disputeRepo repo.Dispute, tripRepo repo.Trip, loadRepo repo.Load, notifier Notifier) *DisputeService {
	return NewDisputeService(&repo.Repositories{Dispute: disputeRepo, Trip: tripRepo, Load: loadRepo}, notifier)
}

func TestFileDisputeOutsideWindow(t *testing.T) {
	tripId, loadId, shipperId := uuid.New(), uuid.New(), uuid.New()

	for _, status := range []string{common.TripPending, common.TripPickup, common.TripInTransit, common.TripDisputed} {
		t.Run(status, func(t *testing.T) {
			s := newDisputeServiceWith(&fakeDisputeRepo{},
				tripFixture(tripId, loadId, uuid.New(), status),
				loadFixture(loadId, shipperId, common.LoadInTransit),
				&recordingNotifier{})

			_, err := s.FileDispute(context.Background(), &entity.FileDisputeInput{
				TripId: tripId.String(), ShipperId: shipperId.String(), IssueType: "damage", Description: "crate crushed",
			})
			if !errors.Is(err, ErrTripNotDisputable) {
				t.Fatalf("expected ErrTripNotDisputable, got %v", err)
			}
		})
	}
}

func TestFileDisputeNotOwner(t *testing.T) {
	tripId, loadId := uuid.New(), uuid.New()
	s := newDisputeServiceWith(&fakeDisputeRepo{},
		tripFixture(tripId, loadId, uuid.New(), common.TripDelivered),
		loadFixture(loadId, uuid.New(), common.LoadDelivered),
		&recordingNotifier{})

	_, err := s.FileDispute(context.Background(), &entity.FileDisputeInput{
		TripId: tripId.String(), ShipperId: uuid.NewString(), IssueType: "damage", Description: "crate crushed",
	})
	if !errors.Is(err, ErrNotLoadOwner) {
		t.Fatalf("expected ErrNotLoadOwner, got %v", err)
	}
}

func TestFileDisputeSingularPerTrip(t *testing.T) {
	tripId, loadId, shipperId := uuid.New(), uuid.New(), uuid.New()
	disputeRepo := &fakeDisputeRepo{
		createDisputeFn: func(ctx context.Context, input *entity.FileDisputeInput, lid uuid.UUID) (uuid.UUID, error) {
			return uuid.Nil, repo_errors.ErrConflict
		},
	}
	s := newDisputeServiceWith(disputeRepo,
		tripFixture(tripId, loadId, uuid.New(), common.TripDelivered),
		loadFixture(loadId, shipperId, common.LoadDelivered),
		&recordingNotifier{})

	_, err := s.FileDispute(context.Background(), &entity.FileDisputeInput{
		TripId: tripId.String(), ShipperId: shipperId.String(), IssueType: "delay", Description: "two days late",
	})
	if !errors.Is(err, ErrDisputeAlreadyExists) {
		t.Fatalf("expected ErrDisputeAlreadyExists, got %v", err)
	}
}

func TestFileDisputeNotifiesCarrier(t *testing.T) {
	tripId, loadId, carrierId, shipperId := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	disputeId := uuid.New()

	disputeRepo := &fakeDisputeRepo{
		createDisputeFn: func(ctx context.Context, input *entity.FileDisputeInput, lid uuid.UUID) (uuid.UUID, error) {
			if lid != loadId {
				t.Fatalf("unexpected load id %s", lid)
			}
			return disputeId, nil
		},
		getDisputeFn: func(ctx context.Context, id string) (*entity.Dispute, error) {
			return &entity.Dispute{Id: disputeId, TripId: tripId, LoadId: loadId, FiledBy: shipperId, Status: common.DisputeOpen}, nil
		},
	}

	notifier := &recordingNotifier{}
	s := newDisputeServiceWith(disputeRepo,
		tripFixture(tripId, loadId, carrierId, common.TripDelivered),
		loadFixture(loadId, shipperId, common.LoadDelivered),
		notifier)

	dispute, err := s.FileDispute(context.Background(), &entity.FileDisputeInput{
		TripId: tripId.String(), ShipperId: shipperId.String(), IssueType: "damage", Description: "crate crushed",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispute.Status != common.DisputeOpen {
		t.Fatalf("expected open dispute, got %s", dispute.Status)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].userId != carrierId || notifier.sent[0].priority != common.PriorityCritical {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
}

func TestRespondCarrierOnlyAndOpenOnly(t *testing.T) {
	tripId, loadId, carrierId, shipperId := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	disputeId := uuid.New()

	makeService := func(disputeStatus string) *DisputeService {
		disputeRepo := &fakeDisputeRepo{
			getDisputeFn: func(ctx context.Context, id string) (*entity.Dispute, error) {
				return &entity.Dispute{Id: disputeId, TripId: tripId, LoadId: loadId, FiledBy: shipperId, Status: disputeStatus}, nil
			},
		}
		return newDisputeServiceWith(disputeRepo,
			tripFixture(tripId, loadId, carrierId, common.TripDisputed),
			loadFixture(loadId, shipperId, common.LoadDelivered),
			&recordingNotifier{})
	}

	if _, err := makeService(common.DisputeOpen).Respond(context.Background(), disputeId.String(), shipperId.String(), "it arrived fine"); !errors.Is(err, ErrNotAssignedCarrier) {
		t.Fatalf("expected ErrNotAssignedCarrier, got %v", err)
	}
	if _, err := makeService(common.DisputeCarrierResponded).Respond(context.Background(), disputeId.String(), carrierId.String(), "again"); !errors.Is(err, ErrDisputeNotOpen) {
		t.Fatalf("expected ErrDisputeNotOpen, got %v", err)
	}
}

func TestResolveDefaultsNote(t *testing.T) {
	tripId, loadId, carrierId, shipperId := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	disputeId := uuid.New()

	resolved := false
	var gotNote string
	disputeRepo := &fakeDisputeRepo{
		getDisputeFn: func(ctx context.Context, id string) (*entity.Dispute, error) {
			status := common.DisputeOpen
			if resolved {
				status = common.DisputeResolved
			}
			return &entity.Dispute{Id: disputeId, TripId: tripId, LoadId: loadId, FiledBy: shipperId, Status: status}, nil
		},
		resolveDisputeFn: func(ctx context.Context, id uuid.UUID, tid uuid.UUID, lid uuid.UUID, resolverId uuid.UUID, note string) error {
			gotNote = note
			resolved = true
			return nil
		},
	}

	s := newDisputeServiceWith(disputeRepo,
		tripFixture(tripId, loadId, carrierId, common.TripDisputed),
		loadFixture(loadId, shipperId, common.LoadDelivered),
		&recordingNotifier{})

	dispute, err := s.Resolve(context.Background(), disputeId.String(), shipperId.String(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispute.Status != common.DisputeResolved {
		t.Fatalf("expected resolved dispute, got %s", dispute.Status)
	}
	if gotNote != "resolved by shipper" {
		t.Fatalf("expected default note, got %q", gotNote)
	}
}

func TestResolveFilerOnlyAndClosed(t *testing.T) {
	tripId, loadId, shipperId := uuid.New(), uuid.New(), uuid.New()
	disputeId := uuid.New()

	makeService := func(disputeStatus string) *DisputeService {
		disputeRepo := &fakeDisputeRepo{
			getDisputeFn: func(ctx context.Context, id string) (*entity.Dispute, error) {
				return &entity.Dispute{Id: disputeId, TripId: tripId, LoadId: loadId, FiledBy: shipperId, Status: disputeStatus}, nil
			},
		}
		return newDisputeServiceWith(disputeRepo,
			tripFixture(tripId, loadId, uuid.New(), common.TripDisputed),
			loadFixture(loadId, shipperId, common.LoadDelivered),
			&recordingNotifier{})
	}

	if _, err := makeService(common.DisputeOpen).Resolve(context.Background(), disputeId.String(), uuid.NewString(), ""); !errors.Is(err, ErrNotDisputeFiler) {
		t.Fatalf("expected ErrNotDisputeFiler, got %v", err)
	}
	if _, err := makeService(common.DisputeResolved).Resolve(context.Background(), disputeId.String(), shipperId.String(), ""); !errors.Is(err, ErrDisputeClosed) {
		t.Fatalf("expected ErrDisputeClosed, got %v", err)
	}
	if _, err := makeService(common.DisputeEscalated).Resolve(context.Background(), disputeId.String(), shipperId.String(), ""); !errors.Is(err, ErrDisputeClosed) {
		t.Fatalf("expected ErrDisputeClosed, got %v", err)
	}
}

func TestEscalateTerminal(t *testing.T) {
	tripId, loadId, carrierId, shipperId := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	disputeId := uuid.New()

	escalated := false
	disputeRepo := &fakeDisputeRepo{
		getDisputeFn: func(ctx context.Context, id string) (*entity.Dispute, error) {
			status := common.DisputeCarrierResponded
			if escalated {
				status = common.DisputeEscalated
			}
			return &entity.Dispute{Id: disputeId, TripId: tripId, LoadId: loadId, FiledBy: shipperId, Status: status}, nil
		},
		escalateDisputeFn: func(ctx context.Context, id uuid.UUID, tid uuid.UUID, actorId uuid.UUID) error {
			escalated = true
			return nil
		},
	}

	notifier := &recordingNotifier{}
	s := newDisputeServiceWith(disputeRepo,
		tripFixture(tripId, loadId, carrierId, common.TripDisputed),
		loadFixture(loadId, shipperId, common.LoadDelivered),
		notifier)

	dispute, err := s.Escalate(context.Background(), disputeId.String(), shipperId.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dispute.Status != common.DisputeEscalated {
		t.Fatalf("expected escalated dispute, got %s", dispute.Status)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].userId != carrierId || notifier.sent[0].priority != common.PriorityCritical {
		t.Fatalf("unexpected notifications: %+v", notifier.sent)
	}
}

func TestGetDisputeParticipantsOnly(t *testing.T) {
	tripId, loadId, carrierId, shipperId := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	disputeId := uuid.New()

	disputeRepo := &fakeDisputeRepo{
		getDisputeFn: func(ctx context.Context, id string) (*entity.Dispute, error) {
			return &entity.Dispute{Id: disputeId, TripId: tripId, LoadId: loadId, FiledBy: shipperId, Status: common.DisputeOpen}, nil
		},
	}
	s := newDisputeServiceWith(disputeRepo,
		tripFixture(tripId, loadId, carrierId, common.TripDisputed),
		loadFixture(loadId, shipperId, common.LoadDelivered),
		&recordingNotifier{})

	if _, err := s.GetDisputeById(context.Background(), disputeId.String(), shipperId.String()); err != nil {
		t.Fatalf("filer should see the dispute: %v", err)
	}
	if _, err := s.GetDisputeById(context.Background(), disputeId.String(), carrierId.String()); err != nil {
		t.Fatalf("carrier should see the dispute: %v", err)
	}
	if _, err := s.GetDisputeById(context.Background(), disputeId.String(), uuid.NewString()); !errors.Is(err, ErrNotTripParticipant) {
		t.Fatalf("expected ErrNotTripParticipant, got %v", err)
	}
}
