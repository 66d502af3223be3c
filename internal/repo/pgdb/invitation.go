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

const invitationColumns = "bid_invitation.id, bid_invitation.load_id, bid_invitation.shipper_id, " +
	"bid_invitation.carrier_id, bid_invitation.status, bid_invitation.created_at"

type InvitationRepo struct {
	*postgres.Postgres
}

func NewInvitationRepo(pgdb *postgres.Postgres) *InvitationRepo {
	return &InvitationRepo{pgdb}
}

func scanInvitation(row squirrel.RowScanner) (*entity.BidInvitation, error) {
	var invitation entity.BidInvitation
	var createdAt time.Time
	err := row.Scan(&invitation.Id, &invitation.LoadId, &invitation.ShipperId,
		&invitation.CarrierId, &invitation.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	invitation.CreatedAt = createdAt.Format(time.RFC3339)

	return &invitation, nil
}

func (r *InvitationRepo) CreateInvitation(ctx context.Context, loadId uuid.UUID, shipperId uuid.UUID, carrierId uuid.UUID) (uuid.UUID, error) {
	createInvitationSql, args, _ := r.SqlBuilder.
		Insert("bid_invitation").
		Columns("load_id", "shipper_id", "carrier_id", "status").
		Values(loadId, shipperId, carrierId, common.InvitationPending).
		Suffix("RETURNING id").
		ToSql()

	var invitationId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createInvitationSql, args...).Scan(&invitationId)
	if err != nil {
		return uuid.Nil, mapWriteError(err)
	}

	return invitationId, nil
}

func (r *InvitationRepo) GetInvitationById(ctx context.Context, id string) (*entity.BidInvitation, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getInvitationSql, args, _ := r.SqlBuilder.
		Select(invitationColumns).
		From("bid_invitation").
		Where("bid_invitation.id = ?", uuidForm).
		ToSql()

	invitation, err := scanInvitation(r.Database.QueryRowContext(ctx, getInvitationSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return invitation, nil
}

func (r *InvitationRepo) getInvitations(ctx context.Context, condition squirrel.Eq, pg *entity.PaginationInput) ([]entity.BidInvitation, error) {
	getInvitationsSql, args, _ := r.SqlBuilder.
		Select(invitationColumns).
		From("bid_invitation").
		Where(condition).
		OrderBy("bid_invitation.created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getInvitationsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]entity.BidInvitation, 0)
	for rows.Next() {
		invitation, err := scanInvitation(rows)
		if err != nil {
			return invitations, err
		}
		invitations = append(invitations, *invitation)
	}
	if err = rows.Err(); err != nil {
		return invitations, err
	}

	return invitations, nil
}

func (r *InvitationRepo) GetLoadInvitations(ctx context.Context, loadId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error) {
	return r.getInvitations(ctx, squirrel.Eq{"bid_invitation.load_id": loadId}, pg)
}

func (r *InvitationRepo) GetCarrierInvitations(ctx context.Context, carrierId string, pg *entity.PaginationInput) ([]entity.BidInvitation, error) {
	return r.getInvitations(ctx, squirrel.Eq{"bid_invitation.carrier_id": carrierId}, pg)
}

func (r *InvitationRepo) UpdateInvitationStatusById(ctx context.Context, id uuid.UUID, fromStatus string, toStatus string) error {
	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid_invitation").
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
