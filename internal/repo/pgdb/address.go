package pgdb

import (
	"context"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AddressRepo struct {
	*postgres.Postgres
}

func NewAddressRepo(pgdb *postgres.Postgres) *AddressRepo {
	return &AddressRepo{pgdb}
}

func (r *AddressRepo) GetAddressCandidates(ctx context.Context, city string, state string) ([]entity.AddressRecord, error) {
	getCandidatesSql, args, _ := r.SqlBuilder.
		Select("id", "text", "landmark", "city", "state", "delivery_count", "confidence").
		From("address_book").
		Where("lower(city) = lower(?)", city).
		Where("lower(state) = lower(?)", state).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getCandidatesSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entity.AddressRecord, 0)
	for rows.Next() {
		var record entity.AddressRecord
		if err := rows.Scan(&record.Id, &record.Text, &record.Landmark, &record.City,
			&record.State, &record.DeliveryCount, &record.Confidence); err != nil {
			return records, err
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return records, err
	}

	return records, nil
}

func (r *AddressRepo) RecordAddressDelivery(ctx context.Context, id uuid.UUID, confidence int) error {
	recordDeliverySql, args, _ := r.SqlBuilder.
		Update("address_book").
		Set("delivery_count", squirrel.Expr("delivery_count + 1")).
		Set("confidence", confidence).
		Where("id = ?", id).
		ToSql()

	_, err := r.Database.ExecContext(ctx, recordDeliverySql, args...)

	return err
}

func (r *AddressRepo) InsertAddress(ctx context.Context, record *entity.AddressRecord) (uuid.UUID, error) {
	insertAddressSql, args, _ := r.SqlBuilder.
		Insert("address_book").
		Columns("text", "landmark", "city", "state", "delivery_count", "confidence").
		Values(record.Text, record.Landmark, record.City, record.State, record.DeliveryCount, record.Confidence).
		Suffix("RETURNING id").
		ToSql()

	var id uuid.UUID
	if err := r.Database.QueryRowContext(ctx, insertAddressSql, args...).Scan(&id); err != nil {
		return uuid.Nil, err
	}

	return id, nil
}
