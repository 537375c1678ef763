package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// ReviewService records reviews and selects cards that are due.
type ReviewService interface {
	// ReviewCard schedules the card from its latest review and appends the result to the ledger.
	ReviewCard(ctx context.Context, cardID int64, quality flashcard.Quality) (*models.ReviewEvent, error)
	// GetCardsForReview returns the due set as of now, optionally restricted to one deck (deckID 0 = all).
	GetCardsForReview(ctx context.Context, now time.Time, deckID int64) ([]models.DueCard, error)
	History(ctx context.Context, cardID int64) ([]models.ReviewEvent, error)
}

type reviewService struct {
	deckRepo   repository.DeckRepository
	cardRepo   repository.CardRepository
	reviewRepo repository.ReviewRepository
	clock      Clock

	// serializes read-latest + append so two reviews of a card never share a prior
	mu sync.Mutex
}

// NewReviewService creates a new ReviewService
func NewReviewService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository, reviewRepo repository.ReviewRepository, clock Clock) ReviewService {
	return &reviewService{deckRepo: deckRepo, cardRepo: cardRepo, reviewRepo: reviewRepo, clock: clock}
}

func (s *reviewService) ReviewCard(ctx context.Context, cardID int64, quality flashcard.Quality) (*models.ReviewEvent, error) {
	log := logger.FromContext(ctx).WithField("card_id", cardID)
	log.Debug("reviewing card: quality=%s", quality)

	if !quality.IsValid() {
		log.Warn("rejected review with invalid quality: %d", int(quality))
		return nil, errors.NewInvalidQualityError(int(quality))
	}

	if _, err := s.cardRepo.Get(ctx, cardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("rejected review of unknown card")
			return nil, errors.NewUnknownCardError(cardID)
		}
		log.Error("failed to get card: %v", err)
		return nil, errors.NewPersistenceError("get card", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prior, err := s.reviewRepo.LatestReviewForCard(ctx, cardID)
	if err != nil {
		log.Error("failed to get latest review: %v", err)
		return nil, errors.NewPersistenceError("get latest review", err)
	}

	now := s.clock.now()
	schedule, err := flashcard.ComputeNextReview(prior, quality, now)
	if err != nil {
		return nil, err
	}

	event, err := s.reviewRepo.InsertReview(ctx, models.ReviewEvent{
		CardID:         cardID,
		ReviewedAt:     now,
		Quality:        int(quality),
		IntervalDays:   schedule.IntervalDays,
		EaseFactor:     schedule.EaseFactor,
		NextReviewDate: schedule.NextReviewDate,
	})
	if errors.Is(err, repository.ErrMissingParent) {
		// deleted after the existence check
		log.Warn("rejected review of card deleted mid-review")
		return nil, errors.NewUnknownCardError(cardID)
	}
	if err != nil {
		log.Error("failed to append review: %v", err)
		return nil, errors.NewPersistenceError("append review", err)
	}

	log.Info("card reviewed: quality=%s, interval=%d, ease=%.2f", quality, event.IntervalDays, event.EaseFactor)
	return &event, nil
}

func (s *reviewService) GetCardsForReview(ctx context.Context, now time.Time, deckID int64) ([]models.DueCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting cards for review: deck_id=%d", deckID)

	if deckID != 0 {
		if _, err := s.deckRepo.Get(ctx, deckID); err != nil {
			return nil, storageError("get deck", "deck", deckID, err)
		}
	}

	cards, err := s.reviewRepo.DueCards(ctx, now, models.CardFilter{DeckID: deckID})
	if err != nil {
		log.Error("failed to select due cards: %v", err)
		return nil, errors.NewPersistenceError("select due cards", err)
	}
	if cards == nil {
		cards = []models.DueCard{}
	}
	log.Debug("%d cards due", len(cards))
	return cards, nil
}

// History returns a card's reviews, newest first.
func (s *reviewService) History(ctx context.Context, cardID int64) ([]models.ReviewEvent, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review history: card_id=%d", cardID)

	if _, err := s.cardRepo.Get(ctx, cardID); err != nil {
		return nil, storageError("get card", "card", cardID, err)
	}
	events, err := s.reviewRepo.ReviewsForCard(ctx, cardID)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, errors.NewPersistenceError("list reviews", err)
	}
	if events == nil {
		events = []models.ReviewEvent{}
	}
	return events, nil
}
