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

const tripColumns = "trip.id, trip.load_id, trip.bid_id, trip.carrier_id, trip.vehicle_id, " +
	"trip.agreed_amount, trip.platform_fee, trip.total_amount, trip.status, " +
	"trip.started_at, trip.picked_up_at, trip.delivered_at, trip.confirmed_at, " +
	"trip.payment_ref, trip.paid_at, trip.created_at"

type TripRepo struct {
	*postgres.Postgres
}

func NewTripRepo(pgdb *postgres.Postgres) *TripRepo {
	return &TripRepo{pgdb}
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(time.RFC3339)
}

func scanTrip(row squirrel.RowScanner) (*entity.Trip, error) {
	var trip entity.Trip
	var vehicleId uuid.NullUUID
	var startedAt, pickedUpAt, deliveredAt, confirmedAt, paidAt sql.NullTime
	var paymentRef sql.NullString
	var createdAt time.Time
	err := row.Scan(&trip.Id, &trip.LoadId, &trip.BidId, &trip.CarrierId, &vehicleId,
		&trip.AgreedAmount, &trip.PlatformFee, &trip.TotalAmount, &trip.Status,
		&startedAt, &pickedUpAt, &deliveredAt, &confirmedAt, &paymentRef, &paidAt, &createdAt)
	if err != nil {
		return nil, err
	}

	trip.VehicleId = vehicleId.UUID
	trip.HasVehicle = vehicleId.Valid
	trip.StartedAt = formatNullTime(startedAt)
	trip.PickedUpAt = formatNullTime(pickedUpAt)
	trip.DeliveredAt = formatNullTime(deliveredAt)
	trip.ConfirmedAt = formatNullTime(confirmedAt)
	trip.PaymentRef = paymentRef.String
	trip.PaidAt = formatNullTime(paidAt)
	trip.CreatedAt = createdAt.Format(time.RFC3339)

	return &trip, nil
}

func (r *TripRepo) getTrip(ctx context.Context, column string, value any) (*entity.Trip, error) {
	getTripSql, args, _ := r.SqlBuilder.
		Select(tripColumns).
		From("trip").
		Where(column+" = ?", value).
		ToSql()

	trip, err := scanTrip(r.Database.QueryRowContext(ctx, getTripSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return trip, nil
}

func (r *TripRepo) GetTripById(ctx context.Context, id string) (*entity.Trip, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getTrip(ctx, "trip.id", uuidForm)
}

func (r *TripRepo) GetTripByLoadId(ctx context.Context, loadId string) (*entity.Trip, error) {
	uuidForm, err := uuid.Parse(loadId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	return r.getTrip(ctx, "trip.load_id", uuidForm)
}

func (r *TripRepo) getTrips(ctx context.Context, base squirrel.SelectBuilder, pg *entity.PaginationInput) ([]entity.Trip, error) {
	getTripsSql, args, _ := base.
		OrderBy("trip.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getTripsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]entity.Trip, 0)
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return trips, err
		}
		trips = append(trips, *trip)
	}
	if err = rows.Err(); err != nil {
		return trips, err
	}

	return trips, nil
}

func (r *TripRepo) GetCarrierTrips(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Trip, error) {
	base := r.SqlBuilder.
		Select(tripColumns).
		From("trip").
		Where("trip.carrier_id = ?", carrierId)

	return r.getTrips(ctx, base, pg)
}

func (r *TripRepo) GetShipperTrips(ctx context.Context, shipperId string, pg *entity.PaginationInput) ([]entity.Trip, error) {
	base := r.SqlBuilder.
		Select(tripColumns).
		From("trip").
		InnerJoin("load on load.id = trip.load_id").
		Where("load.shipper_id = ?", shipperId)

	return r.getTrips(ctx, base, pg)
}

// stampColumn maps a target trip status to the timestamp column it owns.
func stampColumn(toStatus string) string {
	switch toStatus {
	case common.TripPickup:
		return "started_at"
	case common.TripInTransit:
		return "picked_up_at"
	case common.TripDelivered:
		return "delivered_at"
	case common.TripConfirmed:
		return "confirmed_at"
	}

	return ""
}

// AdvanceTripStatus applies one forward step of the delivery state machine as
// a single transaction: the guarded trip update, its stage timestamp, the
// load sync and the tracking event land together or not at all.
func (r *TripRepo) AdvanceTripStatus(ctx context.Context, tripId uuid.UUID, fromStatus string, toStatus string, loadStatus string, actorId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	update := r.SqlBuilder.
		Update("trip").
		Set("status", toStatus).
		Where("id = ?", tripId).
		Where("status = ?", fromStatus)
	if column := stampColumn(toStatus); column != "" {
		update = update.Set(column, squirrel.Expr("now()"))
	}

	advanceSql, args, _ := update.RunWith(tx).ToSql()

	result, err := tx.Exec(advanceSql, args...)
	if err != nil {
		return rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return rollback(tx, err)
	}

	if loadStatus != "" {
		syncLoadSql, args, _ := r.SqlBuilder.
			Update("load").
			Set("status", loadStatus).
			Where("id = (select load_id from trip where id = ?)", tripId).
			RunWith(tx).
			ToSql()

		if _, err := tx.Exec(syncLoadSql, args...); err != nil {
			return rollback(tx, err)
		}
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "status_"+toStatus, "", actorId); err != nil {
		return rollback(tx, err)
	}

	return tx.Commit()
}

// ConfirmTrip closes the trip from delivered, or from disputed when the
// shipper accepts a redelivery: the still-open dispute is auto-resolved in
// the same transaction and the load completes. The load write is conditioned
// on the load not being cancelled, so a cancelled load never flips to
// completed.
func (r *TripRepo) ConfirmTrip(ctx context.Context, tripId uuid.UUID, loadId uuid.UUID, actorId uuid.UUID, autoResolveNote string) (*entity.ConfirmTripResult, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	confirmSql, args, _ := r.SqlBuilder.
		Update("trip").
		Set("status", common.TripConfirmed).
		Set("confirmed_at", squirrel.Expr("now()")).
		Where("id = ?", tripId).
		Where(squirrel.Eq{"status": []string{common.TripDelivered, common.TripDisputed}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(confirmSql, args...)
	if err != nil {
		return nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return nil, rollback(tx, err)
	}

	completeLoadSql, args, _ := r.SqlBuilder.
		Update("load").
		Set("status", common.LoadCompleted).
		Where("id = ?", loadId).
		Where("status <> ?", common.LoadCancelled).
		RunWith(tx).
		ToSql()

	result, err = tx.Exec(completeLoadSql, args...)
	if err != nil {
		return nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return nil, rollback(tx, err)
	}

	resolveDisputeSql, args, _ := r.SqlBuilder.
		Update("dispute").
		Set("status", common.DisputeResolved).
		Set("resolution_note", autoResolveNote).
		Set("resolved_by", actorId).
		Set("resolved_at", squirrel.Expr("now()")).
		Where("trip_id = ?", tripId).
		Where(squirrel.Eq{"status": []string{common.DisputeOpen, common.DisputeCarrierResponded}}).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	outcome := entity.ConfirmTripResult{}
	var disputeId uuid.UUID
	err = tx.QueryRow(resolveDisputeSql, args...).Scan(&disputeId)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, rollback(tx, err)
	}
	if err == nil {
		outcome.AutoResolvedDisputeId = disputeId
		outcome.DisputeAutoResolved = true
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "status_"+common.TripConfirmed, "delivery confirmed by shipper", actorId); err != nil {
		return nil, rollback(tx, err)
	}
	if outcome.DisputeAutoResolved {
		if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "dispute_resolved", autoResolveNote, actorId); err != nil {
			return nil, rollback(tx, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &outcome, nil
}

func (r *TripRepo) GetTrackingEvents(ctx context.Context, tripId string, pg *entity.PaginationInput) ([]entity.TrackingEvent, error) {
	uuidForm, err := uuid.Parse(tripId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getEventsSql, args, _ := r.SqlBuilder.
		Select("tracking_event.id, tracking_event.trip_id, tracking_event.event_type, tracking_event.note, tracking_event.actor_id, tracking_event.created_at").
		From("tracking_event").
		Where("tracking_event.trip_id = ?", uuidForm).
		OrderBy("tracking_event.created_at ASC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getEventsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]entity.TrackingEvent, 0)
	for rows.Next() {
		var event entity.TrackingEvent
		var note sql.NullString
		var actorId uuid.NullUUID
		var createdAt time.Time
		if err := rows.Scan(&event.Id, &event.TripId, &event.EventType, &note, &actorId, &createdAt); err != nil {
			return events, err
		}
		event.Note = note.String
		event.ActorId = actorId.UUID
		event.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return events, err
	}

	return events, nil
}
