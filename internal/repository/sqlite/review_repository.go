package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

const reviewColumns = "id, card_id, reviewed_at, quality, interval_days, ease_factor, next_review_at"

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates the SQLite-backed review ledger.
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (models.ReviewEvent, error) {
	var e models.ReviewEvent
	var reviewed, next int64
	err := row.Scan(&e.ID, &e.CardID, &reviewed, &e.Quality, &e.IntervalDays, &e.EaseFactor, &next)
	e.ReviewedAt = fromMillis(reviewed)
	e.NextReviewDate = fromMillis(next)
	return e, err
}

func (r *reviewRepository) InsertReview(ctx context.Context, e models.ReviewEvent) (models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review: card_id=%d, quality=%d, interval=%d, ease=%.2f", e.CardID, e.Quality, e.IntervalDays, e.EaseFactor)

	// single statement: the row is either fully written or not at all
	res, err := r.db.ExecContext(ctx, `
INSERT INTO reviews (card_id, reviewed_at, quality, interval_days, ease_factor, next_review_at)
VALUES (?, ?, ?, ?, ?, ?)
`, e.CardID, toMillis(e.ReviewedAt), e.Quality, e.IntervalDays, e.EaseFactor, toMillis(e.NextReviewDate))
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return models.ReviewEvent{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review id: %v", err)
		return models.ReviewEvent{}, err
	}

	e.ID = id
	e.ReviewedAt = fromMillis(toMillis(e.ReviewedAt))
	e.NextReviewDate = fromMillis(toMillis(e.NextReviewDate))
	log.Debug("review appended: id=%d", id)
	return e, nil
}

func (r *reviewRepository) LatestReviewForCard(ctx context.Context, cardID int64) (*models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("getting latest review: card_id=%d", cardID)

	e, err := scanReview(r.db.QueryRowContext(ctx, `
SELECT `+reviewColumns+`
FROM reviews
WHERE card_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT 1
`, cardID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card has no reviews: card_id=%d", cardID)
			return nil, nil
		}
		log.Error("failed to get latest review: %v", err)
		return nil, err
	}
	return &e, nil
}

func (r *reviewRepository) ReviewsInRange(ctx context.Context, start, end time.Time) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews in range: start=%s, end=%s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	query, args, err := sqlBuilder.Select(reviewColumns).
		From("reviews").
		Where(squirrel.GtOrEq{"reviewed_at": toMillis(start)}).
		Where(squirrel.LtOrEq{"reviewed_at": toMillis(end)}).
		OrderBy("reviewed_at ASC", "id ASC").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	return r.queryReviews(ctx, query, args...)
}

func (r *reviewRepository) ReviewsForCard(ctx context.Context, cardID int64) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews for card: card_id=%d", cardID)

	return r.queryReviews(ctx, `
SELECT `+reviewColumns+`
FROM reviews
WHERE card_id = ?
ORDER BY reviewed_at DESC, id DESC
`, cardID)
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.ReviewEvent
	for rows.Next() {
		e, err := scanReview(rows)
		if err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		out = append(out, e)
	}
	log.Debug("found %d reviews", len(out))
	return out, rows.Err()
}

func (r *reviewRepository) DueCards(ctx context.Context, now time.Time, filter models.CardFilter) ([]models.DueCard, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("selecting due cards: now=%s, deck_id=%d", now.Format(time.RFC3339), filter.DeckID)

	// one statement, so the whole selection reads a single snapshot
	q := sqlBuilder.Select("c.id", "c.deck_id", "c.question", "c.answer", "c.created_at", "r.next_review_at").
		From("cards c").
		LeftJoin(latestReviewJoin).
		Where(squirrel.Or{
			squirrel.Eq{"r.id": nil},
			squirrel.LtOrEq{"r.next_review_at": toMillis(now)},
		}).
		OrderBy("c.id ASC")
	if filter.DeckID != 0 {
		q = q.Where(squirrel.Eq{"c.deck_id": filter.DeckID})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to select due cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.DueCard
	for rows.Next() {
		var d models.DueCard
		var created int64
		var next sql.NullInt64
		if err := rows.Scan(&d.ID, &d.DeckID, &d.Question, &d.Answer, &created, &next); err != nil {
			log.Error("failed to scan due card row: %v", err)
			return nil, err
		}
		d.CreatedAt = fromMillis(created)
		if next.Valid {
			t := fromMillis(next.Int64)
			d.NextReviewDate = &t
		}
		out = append(out, d)
	}
	log.Debug("found %d due cards", len(out))
	return out, rows.Err()
}
