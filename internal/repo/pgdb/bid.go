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

const bidColumns = "bid.id, bid.load_id, bid.carrier_id, bid.vehicle_id, bid.amount, " +
	"bid.estimated_hours, bid.message, bid.status, bid.created_at"

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

func scanBid(row squirrel.RowScanner) (*entity.Bid, error) {
	var bid entity.Bid
	var vehicleId uuid.NullUUID
	var estimatedHours sql.NullInt64
	var message sql.NullString
	var createdAt time.Time
	err := row.Scan(&bid.Id, &bid.LoadId, &bid.CarrierId, &vehicleId, &bid.Amount,
		&estimatedHours, &message, &bid.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	bid.VehicleId = vehicleId.UUID
	bid.HasVehicle = vehicleId.Valid
	bid.EstimatedHours = int(estimatedHours.Int64)
	bid.Message = message.String
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}

func nullableUuid(s string) any {
	if s == "" {
		return nil
	}

	return s
}

// PlaceBid creates a carrier's bid in one transaction. A withdrawn bid by the
// same carrier on the same load is reused in place rather than duplicated;
// the partial unique index on (load_id, carrier_id) catches a second active
// bid. The load's denormalized bid count is bumped and a matching pending
// invitation moves to bid_placed.
func (r *BidRepo) PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	reuseSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidPending).
		Set("amount", input.Amount).
		Set("vehicle_id", nullableUuid(input.VehicleId)).
		Set("estimated_hours", input.EstimatedHours).
		Set("message", input.Message).
		Set("created_at", squirrel.Expr("now()")).
		Where("load_id = ?", input.LoadId).
		Where("carrier_id = ?", input.CarrierId).
		Where("status = ?", common.BidWithdrawn).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var bidId uuid.UUID
	err = tx.QueryRow(reuseSql, args...).Scan(&bidId)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, rollback(tx, mapWriteError(err))
	}

	if errors.Is(err, sql.ErrNoRows) {
		insertSql, args, _ := r.SqlBuilder.
			Insert("bid").
			Columns("load_id", "carrier_id", "vehicle_id", "amount", "estimated_hours", "message", "status").
			Values(input.LoadId, input.CarrierId, nullableUuid(input.VehicleId), input.Amount,
				input.EstimatedHours, input.Message, common.BidPending).
			Suffix("RETURNING id").
			RunWith(tx).
			ToSql()

		if err := tx.QueryRow(insertSql, args...).Scan(&bidId); err != nil {
			return uuid.Nil, rollback(tx, mapWriteError(err))
		}
	}

	// The load must still be open; first bid moves it from posted to bidding.
	bumpLoadSql, args, _ := r.SqlBuilder.
		Update("load").
		Set("status", common.LoadBidding).
		Set("bid_count", squirrel.Expr("bid_count + 1")).
		Where("id = ?", input.LoadId).
		Where(squirrel.Eq{"status": []string{common.LoadPosted, common.LoadBidding}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(bumpLoadSql, args...)
	if err != nil {
		return uuid.Nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	markInvitationSql, args, _ := r.SqlBuilder.
		Update("bid_invitation").
		Set("status", common.InvitationBidPlaced).
		Where("load_id = ?", input.LoadId).
		Where("carrier_id = ?", input.CarrierId).
		Where(squirrel.Eq{"status": []string{common.InvitationPending, common.InvitationViewed}}).
		RunWith(tx).
		ToSql()

	if _, err := tx.Exec(markInvitationSql, args...); err != nil {
		return uuid.Nil, rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where("bid.id = ?", uuidForm).
		ToSql()

	bid, err := scanBid(r.Database.QueryRowContext(ctx, getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return bid, nil
}

func (r *BidRepo) getBids(ctx context.Context, condition squirrel.Eq, pg *entity.PaginationInput) ([]entity.Bid, error) {
	getBidsSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		Where(condition).
		OrderBy("bid.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getBidsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return bids, err
		}
		bids = append(bids, *bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) GetLoadBids(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	return r.getBids(ctx, squirrel.Eq{"bid.load_id": loadId}, pg)
}

func (r *BidRepo) GetCarrierBids(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	return r.getBids(ctx, squirrel.Eq{"bid.carrier_id": carrierId}, pg)
}

func (r *BidRepo) UpdateBidStatusById(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error {
	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", toStatus).
		Where("id = ?", id).
		Where("status = ?", fromStatus).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateStatusSql, args...)
	if err != nil {
		return err
	}

	return guardResult(result)
}

// WithdrawBid retires a pending bid and releases its slot in the load's
// denormalized bid count. The row stays behind for in-place reuse on re-bid.
func (r *BidRepo) WithdrawBid(ctx context.Context, bidId uuid.UUID, loadId uuid.UUID) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	withdrawSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidWithdrawn).
		Where("id = ?", bidId).
		Where("status = ?", common.BidPending).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(withdrawSql, args...)
	if err != nil {
		return rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return rollback(tx, err)
	}

	dropCountSql, args, _ := r.SqlBuilder.
		Update("load").
		Set("bid_count", squirrel.Expr("greatest(bid_count - 1, 0)")).
		Where("id = ?", loadId).
		RunWith(tx).
		ToSql()

	if _, err := tx.Exec(dropCountSql, args...); err != nil {
		return rollback(tx, err)
	}

	return tx.Commit()
}

// AcceptBid is the critical atomic operation: the accepted bid, the bulk
// rejection of its siblings, the load's transition to accepted, the expiry of
// invitations that never turned into bids and the trip creation land in one
// transaction. The load update is conditioned on the load still being
// pre-accept, so two concurrent accepts on the same load cannot both succeed;
// the loser sees a conflict.
func (r *BidRepo) AcceptBid(ctx context.Context, bid *entity.Bid, shipperId uuid.UUID, platformFee int64) (*entity.AcceptBidResult, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	acceptLoadSql, args, _ := r.SqlBuilder.
		Update("load").
		Set("status", common.LoadAccepted).
		Set("accepted_bid_id", bid.Id).
		Where("id = ?", bid.LoadId).
		Where(squirrel.Eq{"status": []string{common.LoadPosted, common.LoadBidding}}).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(acceptLoadSql, args...)
	if err != nil {
		return nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return nil, rollback(tx, err)
	}

	acceptBidSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidAccepted).
		Where("id = ?", bid.Id).
		Where("status = ?", common.BidPending).
		RunWith(tx).
		ToSql()

	result, err = tx.Exec(acceptBidSql, args...)
	if err != nil {
		return nil, rollback(tx, err)
	}
	if err = guardResult(result); err != nil {
		return nil, rollback(tx, err)
	}

	rejectOthersSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", common.BidRejected).
		Where("load_id = ?", bid.LoadId).
		Where("status = ?", common.BidPending).
		Where("id <> ?", bid.Id).
		Suffix("RETURNING carrier_id").
		RunWith(tx).
		ToSql()

	rows, err := tx.Query(rejectOthersSql, args...)
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
		Where("load_id = ?", bid.LoadId).
		Where(squirrel.Eq{"status": []string{common.InvitationPending, common.InvitationViewed}}).
		RunWith(tx).
		ToSql()

	if _, err := tx.Exec(expireInvitationsSql, args...); err != nil {
		return nil, rollback(tx, err)
	}

	createTripSql, args, _ := r.SqlBuilder.
		Insert("trip").
		Columns("load_id", "bid_id", "carrier_id", "vehicle_id", "agreed_amount", "platform_fee", "total_amount", "status").
		Values(bid.LoadId, bid.Id, bid.CarrierId, nullableVehicle(bid), bid.Amount, platformFee,
			bid.Amount+platformFee, common.TripPending).
		Suffix("RETURNING id, created_at").
		RunWith(tx).
		ToSql()

	var tripId uuid.UUID
	var tripCreatedAt time.Time
	if err := tx.QueryRow(createTripSql, args...).Scan(&tripId, &tripCreatedAt); err != nil {
		return nil, rollback(tx, mapWriteError(err))
	}

	if err := insertTrackingEvent(tx, r.SqlBuilder, tripId, "trip_created", "bid accepted by shipper", shipperId); err != nil {
		return nil, rollback(tx, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	trip := entity.Trip{
		Id:           tripId,
		LoadId:       bid.LoadId,
		BidId:        bid.Id,
		CarrierId:    bid.CarrierId,
		VehicleId:    bid.VehicleId,
		HasVehicle:   bid.HasVehicle,
		AgreedAmount: bid.Amount,
		PlatformFee:  platformFee,
		TotalAmount:  bid.Amount + platformFee,
		Status:       common.TripPending,
		CreatedAt:    tripCreatedAt.Format(time.RFC3339),
	}

	return &entity.AcceptBidResult{Trip: trip, RejectedCarrierIds: rejected}, nil
}

func nullableVehicle(bid *entity.Bid) any {
	if !bid.HasVehicle {
		return nil
	}

	return bid.VehicleId
}
