package services

import (
	"database/sql"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/repository"
)

// Clock returns the current instant. Services default to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC().Truncate(time.Millisecond)
	}
	// the ledger stores milliseconds, so callers see what was persisted
	return c().UTC().Truncate(time.Millisecond)
}

// storageError maps repository errors onto application errors.
func storageError(op, resource string, id int64, err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return errors.NewNotFoundError(resource, id)
	case errors.Is(err, repository.ErrDuplicate):
		return errors.NewValidationError("name", "already exists")
	default:
		return errors.NewPersistenceError(op, err)
	}
}
