package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

// ErrDuplicate is returned when an insert or update violates a uniqueness constraint.
// Lookups of missing rows return sql.ErrNoRows.
var ErrDuplicate = errors.New("repository: duplicate")

// ErrMissingParent is returned when a write references a row that does not exist.
var ErrMissingParent = errors.New("repository: missing parent row")

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context) ([]models.Deck, error)
	Summaries(ctx context.Context, now time.Time) ([]models.DeckSummary, error)
	Update(ctx context.Context, id int64, update models.DeckUpdate) error
	Delete(ctx context.Context, id int64) error
}

// CardRepository handles card data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Update(ctx context.Context, id int64, update models.CardUpdate) error
	Delete(ctx context.Context, id int64) error
}

// ReviewRepository is the review ledger: append-only, queried by card and by time.
type ReviewRepository interface {
	// InsertReview appends one event atomically and returns it with its assigned id.
	InsertReview(ctx context.Context, review models.ReviewEvent) (models.ReviewEvent, error)
	// LatestReviewForCard returns the event with the greatest (reviewed_at, id), or nil.
	LatestReviewForCard(ctx context.Context, cardID int64) (*models.ReviewEvent, error)
	// ReviewsInRange returns events with reviewed_at in [start, end], oldest first.
	ReviewsInRange(ctx context.Context, start, end time.Time) ([]models.ReviewEvent, error)
	ReviewsForCard(ctx context.Context, cardID int64) ([]models.ReviewEvent, error)
	// DueCards returns new cards and cards whose latest next_review_at <= now, by card id.
	DueCards(ctx context.Context, now time.Time, filter models.CardFilter) ([]models.DueCard, error)
}
