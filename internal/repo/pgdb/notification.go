package pgdb

import (
	"context"
	"freight-marketplace-api/internal/entity"
	"freight-marketplace-api/pkg/postgres"
)

type NotificationRepo struct {
	*postgres.Postgres
}

func NewNotificationRepo(pgdb *postgres.Postgres) *NotificationRepo {
	return &NotificationRepo{pgdb}
}

func (r *NotificationRepo) CreateNotification(ctx context.Context, n *entity.Notification) error {
	createNotificationSql, args, _ := r.SqlBuilder.
		Insert("notification").
		Columns("user_id", "title", "body", "priority", "action_ref").
		Values(n.UserId, n.Title, n.Body, n.Priority, n.ActionRef).
		ToSql()

	_, err := r.Database.ExecContext(ctx, createNotificationSql, args...)

	return err
}
