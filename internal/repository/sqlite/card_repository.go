package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (deck_id, question, answer, created_at)
VALUES (?, ?, ?, ?)
`, c.DeckID, c.Question, c.Answer, toMillis(c.CreatedAt))
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

func (r *cardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	var created int64
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, question, answer, created_at
FROM cards
WHERE id = ?
`, id).Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found: id=%d", id)
		} else {
			log.Error("failed to get card: %v", err)
		}
		return nil, err
	}
	c.CreatedAt = fromMillis(created)
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%d, limit=%d", filter.DeckID, filter.Limit)

	q := sqlBuilder.Select("id", "deck_id", "question", "answer", "created_at").
		From("cards").
		OrderBy("id ASC")
	if filter.DeckID != 0 {
		q = q.Where(squirrel.Eq{"deck_id": filter.DeckID})
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
		log.Error("failed to list cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		var created int64
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &created); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		c.CreatedAt = fromMillis(created)
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Update(ctx context.Context, id int64, u models.CardUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%d", id)

	if u.DeckID == nil && u.Question == nil && u.Answer == nil {
		_, err := r.Get(ctx, id)
		return err
	}
	q := sqlBuilder.Update("cards").Where(squirrel.Eq{"id": id})
	if u.DeckID != nil {
		q = q.Set("deck_id", *u.DeckID)
	}
	if u.Question != nil {
		q = q.Set("question", *u.Question)
	}
	if u.Answer != nil {
		q = q.Set("answer", *u.Answer)
	}

	query, args, err := q.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return translate(err)
	}
	return affectedOrNotFound(res)
}

func (r *cardRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%d", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return err
	}
	return affectedOrNotFound(res)
}
