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
)

const loadColumns = "load.id, load.shipper_id, load.origin_text, load.origin_city, load.origin_state, " +
	"load.dest_text, load.dest_city, load.dest_state, load.cargo_type, load.cargo_weight_kg, " +
	"load.budget_amount, load.negotiable, load.pickup_date, load.delivery_date, load.status, " +
	"load.bid_count, load.accepted_bid_id, load.created_at"

type LoadRepo struct {
	*postgres.Postgres
}

func NewLoadRepo(pgdb *postgres.Postgres) *LoadRepo {
	return &LoadRepo{pgdb}
}

func scanLoad(row squirrel.RowScanner) (*entity.Load, error) {
	var load entity.Load
	var acceptedBidId uuid.NullUUID
	var createdAt time.Time
	err := row.Scan(&load.Id, &load.ShipperId, &load.OriginText, &load.OriginCity, &load.OriginState,
		&load.DestText, &load.DestCity, &load.DestState, &load.CargoType, &load.CargoWeightKg,
		&load.BudgetAmount, &load.Negotiable, &load.PickupDate, &load.DeliveryDate, &load.Status,
		&load.BidCount, &acceptedBidId, &createdAt)
	if err != nil {
		return nil, err
	}

	load.AcceptedBidId = acceptedBidId.UUID
	load.HasAcceptedBid = acceptedBidId.Valid
	load.CreatedAt = createdAt.Format(time.RFC3339)

	return &load, nil
}

func (r *LoadRepo) CreateLoad(ctx context.Context, input *entity.CreateLoadInput) (uuid.UUID, error) {
	createLoadSql, args, _ := r.SqlBuilder.
		Insert("load").
		Columns("shipper_id", "origin_text", "origin_city", "origin_state",
			"dest_text", "dest_city", "dest_state", "cargo_type", "cargo_weight_kg",
			"budget_amount", "negotiable", "pickup_date", "delivery_date", "status").
		Values(input.ShipperId, input.OriginText, input.OriginCity, input.OriginState,
			input.DestText, input.DestCity, input.DestState, input.CargoType, input.CargoWeightKg,
			input.BudgetAmount, input.Negotiable, input.PickupDate, input.DeliveryDate, common.LoadPosted).
		Suffix("RETURNING id").
		ToSql()

	var loadId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createLoadSql, args...).Scan(&loadId)
	if err != nil {
		return uuid.Nil, err
	}

	return loadId, nil
}

func (r *LoadRepo) GetLoadById(ctx context.Context, id string) (*entity.Load, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getLoadSql, args, _ := r.SqlBuilder.
		Select(loadColumns).
		From("load").
		Where("load.id = ?", uuidForm).
		ToSql()

	load, err := scanLoad(r.Database.QueryRowContext(ctx, getLoadSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return load, nil
}

func (r *LoadRepo) ListLoads(ctx context.Context, filter *entity.LoadFilter, pg *entity.PaginationInput) ([]entity.Load, int, error) {
	conditions := squirrel.And{}
	if filter.Status != "" {
		conditions = append(conditions, squirrel.Eq{"load.status": filter.Status})
	}
	if filter.ShipperId != "" {
		conditions = append(conditions, squirrel.Eq{"load.shipper_id": filter.ShipperId})
	}
	if filter.OriginCity != "" {
		conditions = append(conditions, squirrel.Eq{"load.origin_city": filter.OriginCity})
	}
	if filter.DestCity != "" {
		conditions = append(conditions, squirrel.Eq{"load.dest_city": filter.DestCity})
	}
	if filter.CargoType != "" {
		conditions = append(conditions, squirrel.Eq{"load.cargo_type": filter.CargoType})
	}

	countSql, args, _ := r.SqlBuilder.
		Select("count(*)").
		From("load").
		Where(conditions).
		ToSql()

	var total int
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSql, args, _ := r.SqlBuilder.
		Select(loadColumns).
		From("load").
		Where(conditions).
		OrderBy("load.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	loads := make([]entity.Load, 0)
	for rows.Next() {
		load, err := scanLoad(rows)
		if err != nil {
			return loads, 0, err
		}
		loads = append(loads, *load)
	}
	if err = rows.Err(); err != nil {
		return loads, 0, err
	}

	return loads, total, nil
}

func (r *LoadRepo) UpdateLoad(ctx context.Context, id string, patch *entity.UpdateLoadInput) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	update := r.SqlBuilder.Update("load").Where("id = ?", uuidForm)
	if patch.OriginText != "" {
		update = update.Set("origin_text", patch.OriginText)
	}
	if patch.DestText != "" {
		update = update.Set("dest_text", patch.DestText)
	}
	if patch.CargoType != "" {
		update = update.Set("cargo_type", patch.CargoType)
	}
	if patch.BudgetAmount != 0 {
		update = update.Set("budget_amount", patch.BudgetAmount)
	}
	if patch.PickupDate != "" {
		update = update.Set("pickup_date", patch.PickupDate)
	}
	if patch.DeliveryDate != "" {
		update = update.Set("delivery_date", patch.DeliveryDate)
	}

	updateSql, args, err := update.ToSql()
	if err != nil {
		return err
	}

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// CancelLoad applies the cancellation cascade as one transaction: the load is
// moved to cancelled only while still in a pre-transit state, every pending
// bid is rejected, open invitations expire, and an already-committed trip is
// forced to disputed.
func (r *LoadRepo) CancelLoad(ctx context.Context, loadId uuid.UUID) (*entity.CancelLoadResult, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	cancelSql, args, _ := r.SqlBuilder.
		Update("load").
		Set("status", common.LoadCancelled).
		Where("id = ?", loadId).
		Where(squirrel.Eq{"status": []string{common.LoadPosted, common.LoadBidding, common.LoadAccepted}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(cancelSql, args...)
	if err != nil {
		return nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return nil, rollback(tx, err)
	}

	rejectBidsSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidRejected).
		Where("load_id = ?", loadId).
		Where("status = ?", common.BidPending).
		Suffix("RETURNING carrier_id").
		RunWith(tx).
		ToSql()

	rows, err := tx.Query(rejectBidsSql, args...)
	if err != nil {
		return nil, rollback(tx, err)
	}

	rejected := make([]uuid.UUID, 0)
	for rows.Next() {
		var carrierId uuid.UUID
		if err := rows.Scan(&carrierId); err != nil {
			rows.Close()
			return nil, rollback(tx, err)
		}
		rejected = append(rejected, carrierId)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, rollback(tx, err)
	}
	rows.Close()

	expireInvitationsSql, args, _ := r.SqlBuilder.
		Update("bid_invitation").
		Set("status", common.InvitationExpired).
		Where("load_id = ?", loadId).
		Where(squirrel.Eq{"status": []string{common.InvitationPending, common.InvitationViewed}}).
		RunWith(tx).
		ToSql()

	if _, err := tx.Exec(expireInvitationsSql, args...); err != nil {
		return nil, rollback(tx, err)
	}

	// A trip exists only if the load had already reached accepted. Forcing it
	// to disputed keeps the externally observable cancel-after-accept signal.
	getTripSql, args, _ := r.SqlBuilder.
		Select("id", "carrier_id").
		From("trip").
		Where("load_id = ?", loadId).
		RunWith(tx).
		ToSql()

	var disputedTrip *entity.Trip
	var tripId, carrierId uuid.UUID
	err = tx.QueryRow(getTripSql, args...).Scan(&tripId, &carrierId)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, rollback(tx, err)
	}
	if err == nil {
		disputeTripSql, args, _ := r.SqlBuilder.
			Update("trip").
			Set("status", common.TripDisputed).
			Where("id = ?", tripId).
			RunWith(tx).
			ToSql()

		if _, err := tx.Exec(disputeTripSql, args...); err != nil {
			return nil, rollback(tx, err)
		}

		if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "load_cancelled", "load cancelled by shipper after acceptance", uuid.Nil); err != nil {
			return nil, rollback(tx, err)
		}

		disputedTrip = &entity.Trip{Id: tripId, LoadId: loadId, CarrierId: carrierId, Status: common.TripDisputed}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &entity.CancelLoadResult{RejectedCarrierIds: rejected, DisputedTrip: disputedTrip}, nil
}
