package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: name=%s", d.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO decks (name, description, created_at)
VALUES (?, ?, ?)
`, d.Name, d.Description, toMillis(d.CreatedAt))
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	var created int64
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.Description, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found: id=%d", id)
		} else {
			log.Error("failed to get deck: %v", err)
		}
		return nil, err
	}
	d.CreatedAt = fromMillis(created)
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, created_at
FROM decks
ORDER BY id
`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		var created int64
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &created); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		d.CreatedAt = fromMillis(created)
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Summaries(ctx context.Context, now time.Time) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("summarizing decks: now=%s", now.Format(time.RFC3339))

	rows, err := r.db.QueryContext(ctx, `
SELECT d.id, d.name, d.description, d.created_at,
       COUNT(c.id),
       COALESCE(SUM(CASE WHEN c.id IS NOT NULL AND (r.id IS NULL OR r.next_review_at <= ?) THEN 1 ELSE 0 END), 0)
FROM decks d
LEFT JOIN cards c ON c.deck_id = d.id
LEFT JOIN `+latestReviewJoin+`
GROUP BY d.id
ORDER BY d.id
`, toMillis(now))
	if err != nil {
		log.Error("failed to summarize decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.DeckSummary
	for rows.Next() {
		var s models.DeckSummary
		var created int64
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &created, &s.CardCount, &s.DueCount); err != nil {
			log.Error("failed to scan deck summary row: %v", err)
			return nil, err
		}
		s.CreatedAt = fromMillis(created)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *deckRepository) Update(ctx context.Context, id int64, u models.DeckUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%d", id)

	if u.Name == nil && u.Description == nil {
		_, err := r.Get(ctx, id)
		return err
	}
	q := sqlBuilder.Update("decks").Where("id = ?", id)
	if u.Name != nil {
		q = q.Set("name", *u.Name)
	}
	if u.Description != nil {
		q = q.Set("description", *u.Description)
	}

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update deck: %v", err)
		return translate(err)
	}
	return affectedOrNotFound(res)
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return err
	}
	return affectedOrNotFound(res)
}
