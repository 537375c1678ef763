package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/vytor/flashdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// latestReviewJoin correlates each card with its most recent review, ties broken by id.
const latestReviewJoin = `reviews r ON r.id = (
	SELECT r2.id FROM reviews r2
	WHERE r2.card_id = c.id
	ORDER BY r2.reviewed_at DESC, r2.id DESC
	LIMIT 1)`

// Instants are stored as unix milliseconds.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// translate maps driver constraint errors onto repository sentinels.
func translate(err error) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		return repository.ErrDuplicate
	case sqlite3.ErrConstraintForeignKey:
		return repository.ErrMissingParent
	}
	return err
}

// affectedOrNotFound turns an UPDATE/DELETE that touched nothing into sql.ErrNoRows.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
