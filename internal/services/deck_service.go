package services

import (
	"context"
	"strings"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// DeckService handles deck-related business logic
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.DeckSummary, error)
	CreateDeck(ctx context.Context, name, description string) (*models.Deck, error)
	GetDeck(ctx context.Context, id int64) (*models.Deck, error)
	UpdateDeck(ctx context.Context, id int64, update models.DeckUpdate) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id int64) error
}

type deckService struct {
	deckRepo repository.DeckRepository
	clock    Clock
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository, clock Clock) DeckService {
	return &deckService{deckRepo: deckRepo, clock: clock}
}

// ListDecks returns every deck with its card and due counts as of now.
func (s *deckService) ListDecks(ctx context.Context) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks")

	decks, err := s.deckRepo.Summaries(ctx, s.clock.now())
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewPersistenceError("list decks", err)
	}
	if decks == nil {
		decks = []models.DeckSummary{}
	}
	return decks, nil
}

func (s *deckService) CreateDeck(ctx context.Context, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: name=%s", name)

	name = strings.TrimSpace(name)
	if name == "" {
		log.Warn("rejected deck with empty name")
		return nil, errors.NewValidationError("name", "cannot be empty")
	}

	deck := models.Deck{Name: name, Description: description, CreatedAt: s.clock.now()}
	id, err := s.deckRepo.Insert(ctx, deck)
	if err != nil {
		log.Error("failed to create deck: %v", err)
		return nil, storageError("create deck", "deck", 0, err)
	}
	deck.ID = id
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d", id)

	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		return nil, storageError("get deck", "deck", id, err)
	}
	return deck, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id int64, update models.DeckUpdate) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%d", id)

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			log.Warn("rejected deck update with empty name: id=%d", id)
			return nil, errors.NewValidationError("name", "cannot be empty")
		}
		update.Name = &name
	}
	if err := s.deckRepo.Update(ctx, id, update); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, storageError("update deck", "deck", id, err)
	}
	return s.GetDeck(ctx, id)
}

// DeleteDeck removes a deck together with its cards and their reviews.
func (s *deckService) DeleteDeck(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d", id)

	if err := s.deckRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return storageError("delete deck", "deck", id, err)
	}
	log.Info("deck deleted: id=%d", id)
	return nil
}
