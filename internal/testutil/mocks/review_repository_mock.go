package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) InsertReview(ctx context.Context, e models.ReviewEvent) (models.ReviewEvent, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(models.ReviewEvent), args.Error(1)
}

func (m *MockReviewRepository) LatestReviewForCard(ctx context.Context, cardID int64) (*models.ReviewEvent, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewEvent), args.Error(1)
}

func (m *MockReviewRepository) ReviewsInRange(ctx context.Context, start, end time.Time) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}

func (m *MockReviewRepository) ReviewsForCard(ctx context.Context, cardID int64) ([]models.ReviewEvent, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewEvent), args.Error(1)
}

func (m *MockReviewRepository) DueCards(ctx context.Context, now time.Time, filter models.CardFilter) ([]models.DueCard, error) {
	args := m.Called(ctx, now, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueCard), args.Error(1)
}
