package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
)

func TestCreateDeck(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())

	repo.On("Insert", ctx, models.Deck{Name: "Kanji", Description: "N5", CreatedAt: now}).Return(int64(3), nil)

	deck, err := svc.CreateDeck(ctx, "  Kanji ", "N5")
	require.NoError(t, err)
	assert.Equal(t, &models.Deck{ID: 3, Name: "Kanji", Description: "N5", CreatedAt: now}, deck)
	repo.AssertExpectations(t)
}

func TestCreateDeck_Validation(t *testing.T) {
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())

	_, err := svc.CreateDeck(context.Background(), "   ", "")
	assert.Equal(t, errors.ErrCodeValidation, errors.As(err).Code)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateDeck_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())
	repo.On("Insert", ctx, mock.Anything).Return(int64(0), repository.ErrDuplicate)

	_, err := svc.CreateDeck(ctx, "Kanji", "")
	appErr := errors.As(err)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestGetDeck_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())
	repo.On("Get", ctx, int64(8)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetDeck(ctx, 8)
	assert.Equal(t, 404, errors.As(err).Status)
}

func TestListDecks_PassesClock(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())
	repo.On("Summaries", ctx, now).Return(nil, nil)

	decks, err := svc.ListDecks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DeckSummary{}, decks)
	repo.AssertExpectations(t)
}

func TestUpdateDeck(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())

	name := " Renamed "
	trimmed := "Renamed"
	repo.On("Update", ctx, int64(2), models.DeckUpdate{Name: &trimmed}).Return(nil)
	repo.On("Get", ctx, int64(2)).Return(&models.Deck{ID: 2, Name: trimmed}, nil)

	deck, err := svc.UpdateDeck(ctx, 2, models.DeckUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", deck.Name)
	repo.AssertExpectations(t)
}

func TestDeleteDeck_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockDeckRepository)
	svc := NewDeckService(repo, fixedClock())
	repo.On("Delete", ctx, int64(4)).Return(sql.ErrNoRows)

	err := svc.DeleteDeck(ctx, 4)
	assert.Equal(t, errors.ErrCodeNotFound, errors.As(err).Code)
}

func TestCreateCard(t *testing.T) {
	ctx := context.Background()
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(decks, cards, fixedClock())

	decks.On("Get", ctx, int64(1)).Return(&models.Deck{ID: 1}, nil)
	cards.On("Insert", ctx, models.Card{DeckID: 1, Question: "capital of France", Answer: "Paris", CreatedAt: now}).Return(int64(9), nil)

	card, err := svc.CreateCard(ctx, 1, "capital of France", " Paris")
	require.NoError(t, err)
	assert.Equal(t, int64(9), card.ID)
	decks.AssertExpectations(t)
	cards.AssertExpectations(t)
}

func TestCreateCard_UnknownDeck(t *testing.T) {
	ctx := context.Background()
	decks := new(mocks.MockDeckRepository)
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(decks, cards, fixedClock())
	decks.On("Get", ctx, int64(1)).Return(nil, sql.ErrNoRows)

	_, err := svc.CreateCard(ctx, 1, "q", "a")
	assert.Equal(t, errors.ErrCodeNotFound, errors.As(err).Code)
	cards.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateCard_RejectsBlankAnswer(t *testing.T) {
	cards := new(mocks.MockCardRepository)
	svc := NewCardService(new(mocks.MockDeckRepository), cards, fixedClock())

	blank := "  "
	_, err := svc.UpdateCard(context.Background(), 1, models.CardUpdate{Answer: &blank})
	assert.Equal(t, errors.ErrCodeValidation, errors.As(err).Code)
	cards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
