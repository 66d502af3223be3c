package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("entity not found")

	// ErrConflict covers both unique-constraint violations and guarded
	// conditional updates that matched zero rows because the entity's status
	// changed underneath the caller.
	ErrConflict = errors.New("conflicting concurrent update or duplicate entity")
)
