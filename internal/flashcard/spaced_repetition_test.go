package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
)

var now = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func prior(interval int, ease float64) *models.ReviewEvent {
	return &models.ReviewEvent{
		ID:             1,
		CardID:         1,
		ReviewedAt:     now.Add(-time.Duration(interval) * 24 * time.Hour),
		Quality:        3,
		IntervalDays:   interval,
		EaseFactor:     ease,
		NextReviewDate: now,
	}
}

func TestComputeNextReview_NewCard(t *testing.T) {
	tests := []struct {
		quality  flashcard.Quality
		interval int
	}{
		{quality: flashcard.Again, interval: 0},
		{quality: flashcard.Hard, interval: 1},
		{quality: flashcard.Good, interval: 1},
		{quality: flashcard.Easy, interval: 4},
	}

	for _, tt := range tests {
		t.Run(tt.quality.String(), func(t *testing.T) {
			s, err := flashcard.ComputeNextReview(nil, tt.quality, now)
			require.NoError(t, err)

			assert.Equal(t, tt.interval, s.IntervalDays)
			assert.Equal(t, 2.5, s.EaseFactor)
			assert.Equal(t, now.Add(time.Duration(tt.interval)*24*time.Hour), s.NextReviewDate)
		})
	}
}

func TestComputeNextReview_AgainOnNewCardIsDueImmediately(t *testing.T) {
	s, err := flashcard.ComputeNextReview(nil, flashcard.Again, now)
	require.NoError(t, err)
	assert.True(t, s.NextReviewDate.Equal(now))
}

func TestComputeNextReview_AgainResetsInterval(t *testing.T) {
	s, err := flashcard.ComputeNextReview(prior(10, 2.5), flashcard.Again, now)
	require.NoError(t, err)

	assert.Equal(t, 1, s.IntervalDays, "interval should reset to 1 regardless of prior interval")
	assert.InDelta(t, 1.96, s.EaseFactor, 1e-9)
}

func TestComputeNextReview_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name     string
		quality  flashcard.Quality
		interval int
		ease     float64
		expected int
		newEase  float64
	}{
		{
			name:     "hard scales by 1.2",
			quality:  flashcard.Hard,
			interval: 10,
			ease:     2.5,
			expected: 12,
			newEase:  2.18,
		},
		{
			name:     "hard never drops below one day",
			quality:  flashcard.Hard,
			interval: 0,
			ease:     2.5,
			expected: 1,
			newEase:  2.18,
		},
		{
			name:     "good multiplies by the new ease",
			quality:  flashcard.Good,
			interval: 10,
			ease:     2.5,
			expected: 24, // 10 * 2.36
			newEase:  2.36,
		},
		{
			name:     "easy compounds the bonus on the rounded interval",
			quality:  flashcard.Easy,
			interval: 10,
			ease:     2.5,
			expected: 33, // round(round(10 * 2.5) * 1.3)
			newEase:  2.5,
		},
		{
			name:     "easy from a one day interval",
			quality:  flashcard.Easy,
			interval: 1,
			ease:     2.5,
			expected: 4, // round(round(2.5) * 1.3) = round(3.9)
			newEase:  2.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := flashcard.ComputeNextReview(prior(tt.interval, tt.ease), tt.quality, now)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, s.IntervalDays)
			assert.InDelta(t, tt.newEase, s.EaseFactor, 1e-9)
			assert.Equal(t, now.Add(time.Duration(tt.expected)*24*time.Hour), s.NextReviewDate)
		})
	}
}

func TestComputeNextReview_MinEaseFactor(t *testing.T) {
	sequences := [][]flashcard.Quality{
		{flashcard.Again, flashcard.Again, flashcard.Again, flashcard.Again, flashcard.Again, flashcard.Again},
		{flashcard.Hard, flashcard.Hard, flashcard.Hard, flashcard.Hard, flashcard.Hard, flashcard.Hard},
		{flashcard.Easy, flashcard.Again, flashcard.Hard, flashcard.Good, flashcard.Again, flashcard.Easy},
	}

	for _, seq := range sequences {
		var last *models.ReviewEvent
		at := now
		for i, q := range seq {
			s, err := flashcard.ComputeNextReview(last, q, at)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.EaseFactor, flashcard.MinEase, "ease factor should not drop below 1.3")
			assert.GreaterOrEqual(t, s.IntervalDays, 0)
			assert.False(t, s.NextReviewDate.Before(at))

			last = &models.ReviewEvent{ID: int64(i + 1), ReviewedAt: at, Quality: int(q), IntervalDays: s.IntervalDays, EaseFactor: s.EaseFactor, NextReviewDate: s.NextReviewDate}
			at = s.NextReviewDate
		}
	}
}

func TestComputeNextReview_Deterministic(t *testing.T) {
	p := prior(6, 2.2)
	a, err := flashcard.ComputeNextReview(p, flashcard.Good, now)
	require.NoError(t, err)
	b, err := flashcard.ComputeNextReview(p, flashcard.Good, now)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestComputeNextReview_InvalidQuality(t *testing.T) {
	for _, q := range []flashcard.Quality{0, 5, 9, -1} {
		_, err := flashcard.ComputeNextReview(nil, q, now)
		assert.ErrorIs(t, err, errors.ErrInvalidQuality)
	}
}
