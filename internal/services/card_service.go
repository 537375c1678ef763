package services

import (
	"context"
	"strings"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// CardService handles card-related business logic
type CardService interface {
	ListCards(ctx context.Context, deckID int64) ([]models.Card, error)
	CreateCard(ctx context.Context, deckID int64, question, answer string) (*models.Card, error)
	GetCard(ctx context.Context, id int64) (*models.Card, error)
	UpdateCard(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, id int64) error
}

type cardService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	clock    Clock
}

// NewCardService creates a new CardService
func NewCardService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository, clock Clock) CardService {
	return &cardService{deckRepo: deckRepo, cardRepo: cardRepo, clock: clock}
}

func (s *cardService) ListCards(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: deck_id=%d", deckID)

	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.List(ctx, models.CardFilter{DeckID: deckID})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewPersistenceError("list cards", err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

func (s *cardService) CreateCard(ctx context.Context, deckID int64, question, answer string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: deck_id=%d", deckID)

	question, answer = strings.TrimSpace(question), strings.TrimSpace(answer)
	if question == "" {
		return nil, errors.NewValidationError("question", "cannot be empty")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}
	if err := s.requireDeck(ctx, deckID); err != nil {
		return nil, err
	}

	card := models.Card{DeckID: deckID, Question: question, Answer: answer, CreatedAt: s.clock.now()}
	id, err := s.cardRepo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to create card: %v", err)
		return nil, errors.NewPersistenceError("create card", err)
	}
	card.ID = id
	return &card, nil
}

func (s *cardService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: id=%d", id)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		return nil, storageError("get card", "card", id, err)
	}
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, id int64, update models.CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", id)

	var err error
	if update.Question, err = trimmedField("question", update.Question); err != nil {
		return nil, err
	}
	if update.Answer, err = trimmedField("answer", update.Answer); err != nil {
		return nil, err
	}
	if update.DeckID != nil {
		if err := s.requireDeck(ctx, *update.DeckID); err != nil {
			return nil, err
		}
	}

	if err := s.cardRepo.Update(ctx, id, update); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, storageError("update card", "card", id, err)
	}
	return s.GetCard(ctx, id)
}

// DeleteCard removes a card and its review history.
func (s *cardService) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", id)

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete card: %v", err)
		return storageError("delete card", "card", id, err)
	}
	return nil
}

func (s *cardService) requireDeck(ctx context.Context, deckID int64) error {
	if _, err := s.deckRepo.Get(ctx, deckID); err != nil {
		return storageError("get deck", "deck", deckID, err)
	}
	return nil
}

// trimmedField trims an optional edit, rejecting one that is present but blank.
func trimmedField(field string, v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil, errors.NewValidationError(field, "cannot be empty")
	}
	return &t, nil
}
