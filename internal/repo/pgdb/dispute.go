package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"freight-marketplace-api/internal/common"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/internal/repo/repo_errors"
	"freight-marketplace-api/pkg/postgres"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const disputeColumns = "dispute.id, dispute.trip_id, dispute.load_id, dispute.filed_by, " +
	"dispute.issue_type, dispute.description, dispute.evidence_urls, dispute.status, " +
	"dispute.carrier_response, dispute.resolution_note, dispute.resolved_by, dispute.resolved_at, " +
	"dispute.created_at"

type DisputeRepo struct {
	*postgres.Postgres
}

func NewDisputeRepo(pgdb *postgres.Postgres) *DisputeRepo {
	return &DisputeRepo{pgdb}
}

func scanDispute(row squirrel.RowScanner) (*entity.Dispute, error) {
	var dispute entity.Dispute
	var carrierResponse, resolutionNote sql.NullString
	var resolvedBy uuid.NullUUID
	var resolvedAt sql.NullTime
	var createdAt time.Time
	err := row.Scan(&dispute.Id, &dispute.TripId, &dispute.LoadId, &dispute.FiledBy,
		&dispute.IssueType, &dispute.Description, pq.Array(&dispute.EvidenceUrls), &dispute.Status,
		&carrierResponse, &resolutionNote, &resolvedBy, &resolvedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	dispute.CarrierResponse = carrierResponse.String
	dispute.ResolutionNote = resolutionNote.String
	dispute.ResolvedBy = resolvedBy.UUID
	dispute.ResolvedAt = formatNullTime(resolvedAt)
	dispute.CreatedAt = createdAt.Format(time.RFC3339)

	return &dispute, nil
}

// CreateDispute files the dispute and branches the trip to disputed in one
// transaction. The unique index on trip_id enforces at most one dispute per
// trip; the guarded trip update enforces the delivered/confirmed window.
func (r *DisputeRepo) CreateDispute(ctx context.Context, input *entity.FileDisputeInput, loadId uuid.UUID) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createDisputeSql, args, _ := r.SqlBuilder.
		Insert("dispute").
		Columns("trip_id", "load_id", "filed_by", "issue_type", "description", "evidence_urls", "status").
		Values(input.TripId, loadId, input.ShipperId, input.IssueType, input.Description,
			pq.Array(input.EvidenceUrls), common.DisputeOpen).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var disputeId uuid.UUID
	if err := tx.QueryRow(createDisputeSql, args...).Scan(&disputeId); err != nil {
		return uuid.Nil, rollback(tx, mapWriteError(err))
	}

	disputeTripSql, args, _ := r.SqlBuilder.
		Update("trip").
		Set("status", common.TripDisputed).
		Where("id = ?", input.TripId).
		Where(squirrel.Eq{"status": []string{common.TripDelivered, common.TripConfirmed}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(disputeTripSql, args...)
	if err != nil {
		return uuid.Nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	tripId, err := uuid.Parse(input.TripId)
	if err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	shipperId, err := uuid.Parse(input.ShipperId)
	if err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "dispute_filed", input.IssueType, shipperId); err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return disputeId, nil
}

func (r *DisputeRepo) getDispute(ctx context.Context, column string, value any) (*entity.Dispute, error) {
	getDisputeSql, args, _ := r.SqlBuilder.
		Select(disputeColumns).
		From("dispute").
		Where(column+" = ?", value).
		ToSql()

	dispute, err := scanDispute(r.Database.QueryRowContext(ctx, getDisputeSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return dispute, nil
}

func (r *DisputeRepo) GetDisputeById(ctx context.Context, id string) (*entity.Dispute, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getDispute(ctx, "dispute.id", uuidForm)
}

func (r *DisputeRepo) GetDisputeByTripId(ctx context.Context, tripId string) (*entity.Dispute, error) {
	uuidForm, err := uuid.Parse(tripId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getDispute(ctx, "dispute.trip_id", uuidForm)
}

func (r *DisputeRepo) RespondDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, carrierId uuid.UUID, response string) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	respondSql, args, _ := r.SqlBuilder.
		Update("dispute").
		Set("status", common.DisputeCarrierResponded).
		Set("carrier_response", response).
		Where("id = ?", disputeId).
		Where("status = ?", common.DisputeOpen).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(respondSql, args...)
	if err != nil {
		return rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return rollback(tx, err)
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "dispute_responded", "", carrierId); err != nil {
		return rollback(tx, err)
	}

	return tx.Commit()
}

// ResolveDispute restores closure: the dispute resolves, the trip returns to
// confirmed and the load completes, all in one transaction.
func (r *DisputeRepo) ResolveDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, loadId uuid.UUID, resolverId uuid.UUID, note string) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	resolveSql, args, _ := r.SqlBuilder.
		Update("dispute").
		Set("status", common.DisputeResolved).
		Set("resolution_note", note).
		Set("resolved_by", resolverId).
		Set("resolved_at", squirrel.Expr("now()")).
		Where("id = ?", disputeId).
		Where(squirrel.Eq{"status": []string{common.DisputeOpen, common.DisputeCarrierResponded}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(resolveSql, args...)
	if err != nil {
		return rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return rollback(tx, err)
	}

	confirmTripSql, args, _ := r.SqlBuilder.
		Update("trip").
		Set("status", common.TripConfirmed).
		Set("confirmed_at", squirrel.Expr("coalesce(confirmed_at, now())")).
		Where("id = ?", tripId).
		RunWith(tx).
		ToSql()

	if _, err := tx.Exec(confirmTripSql, args...); err != nil {
		return rollback(tx, err)
	}

	completeLoadSql, args, _ := r.SqlBuilder.
		Update("load").
		Set("status", common.LoadCompleted).
		Where("id = ?", loadId).
		RunWith(tx).
		ToSql()

	if _, err := tx.Exec(completeLoadSql, args...); err != nil {
		return rollback(tx, err)
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "dispute_resolved", note, resolverId); err != nil {
		return rollback(tx, err)
	}

	return tx.Commit()
}

// EscalateDispute hands the case to out-of-band review. Terminal for this
// engine; the trip and load are left untouched.
func (r *DisputeRepo) EscalateDispute(ctx context.Context, disputeId uuid.UUID, tripId uuid.UUID, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	escalateSql, args, _ := r.SqlBuilder.
		Update("dispute").
		Set("status", common.DisputeEscalated).
		Where("id = ?", disputeId).
		Where(squirrel.Eq{"status": []string{common.DisputeOpen, common.DisputeCarrierResponded}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(escalateSql, args...)
	if err != nil {
		return rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return rollback(tx, err)
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "dispute_escalated", "", actorId); err != nil {
		return rollback(tx, err)
	}

	return tx.Commit()
}
