package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/flashdeck/internal/activity"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// MaxWindowDays bounds every stats window, including heatmaps.
const MaxWindowDays = 3660

// StatsService aggregates the review ledger by UTC day.
type StatsService interface {
	// GetActivity returns review counts per day for reviews in [start, end]. Days without reviews are absent.
	GetActivity(ctx context.Context, start, end time.Time) (map[string]int, error)
	GetStats(ctx context.Context, start, end time.Time) (*models.StreakStats, error)
	// GetHeatmap returns one entry per day for the days ending on end's day.
	GetHeatmap(ctx context.Context, end time.Time, days int) ([]models.DayActivity, error)
}

type statsService struct {
	reviewRepo repository.ReviewRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(reviewRepo repository.ReviewRepository) StatsService {
	return &statsService{reviewRepo: reviewRepo}
}

func (s *statsService) GetActivity(ctx context.Context, start, end time.Time) (map[string]int, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting activity: start=%s, end=%s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	reviews, err := s.reviewsInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return activity.ByDay(reviews, start, end), nil
}

func (s *statsService) GetStats(ctx context.Context, start, end time.Time) (*models.StreakStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats: start=%s, end=%s", start.Format(time.RFC3339), end.Format(time.RFC3339))

	reviews, err := s.reviewsInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	days := activity.Dense(activity.ByDay(reviews, start, end), start, end)
	stats := activity.Streaks(days)
	return &stats, nil
}

func (s *statsService) GetHeatmap(ctx context.Context, end time.Time, days int) ([]models.DayActivity, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting heatmap: end=%s, days=%d", end.Format(time.RFC3339), days)

	if days < 1 || days > MaxWindowDays {
		return nil, errors.NewValidationError("days", fmt.Sprintf("must be between 1 and %d", MaxWindowDays))
	}
	first := activity.StartOfDay(end).AddDate(0, 0, -(days - 1))
	last := activity.StartOfDay(end).AddDate(0, 0, 1).Add(-time.Nanosecond)

	reviews, err := s.reviewsInWindow(ctx, first, last)
	if err != nil {
		return nil, err
	}
	return activity.Dense(activity.ByDay(reviews, first, last), first, last), nil
}

func (s *statsService) reviewsInWindow(ctx context.Context, start, end time.Time) ([]models.ReviewEvent, error) {
	if end.Before(start) {
		return nil, errors.NewValidationError("range", "start must not be after end")
	}
	if end.Sub(start) > MaxWindowDays*24*time.Hour {
		return nil, errors.NewValidationError("range", fmt.Sprintf("must span at most %d days", MaxWindowDays))
	}
	reviews, err := s.reviewRepo.ReviewsInRange(ctx, start, end)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load reviews: %v", err)
		return nil, errors.NewPersistenceError("load reviews", err)
	}
	return reviews, nil
}
