package pgdb

import (
	"database/sql"
	"errors"
	"freight-marketplace-api/internal/repo/repo_errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}

	return false
}

func mapWriteError(err error) error {
	if isUniqueViolation(err) {
		return repo_errors.ErrConflict
	}

	return err
}

// guardResult turns "zero rows matched the conditional update" into a
// conflict: the entity's status changed underneath the caller.
func guardResult(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}

func insertTrackingEvent(tx *sql.Tx, builder squirrel.StatementBuilderType, tripId uuid.UUID, eventType string, note string, actorId uuid.UUID) error {
	var actor any
	if actorId != uuid.Nil {
		actor = actorId
	}

	insertEventSql, args, _ := builder.
		Insert("tracking_event").
		Columns("trip_id", "event_type", "note", "actor_id").
		Values(tripId, eventType, note, actor).
		RunWith(tx).
		ToSql()

	_, err := tx.Exec(insertEventSql, args...)

	return err
}

func rollback(tx *sql.Tx, err error) error {
	if e := tx.Rollback(); e != nil {
		return e
	}

	return err
}
