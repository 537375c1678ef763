package flashcard

import (
	"math"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/models"
)

const (
	InitialEase = 2.5
	MinEase     = 1.3
	hardFactor  = 1.2
	easyBonus   = 1.3
	day         = 24 * time.Hour
)

// first-review intervals, indexed by quality
var newCardIntervals = [...]int{Again: 0, Hard: 1, Good: 1, Easy: 4}

// ComputeNextReview schedules a card using an SM-2 variant. prior is the card's
// latest review, or nil for a card never reviewed. It has no side effects.
func ComputeNextReview(prior *models.ReviewEvent, quality Quality, now time.Time) (models.Schedule, error) {
	if !quality.IsValid() {
		return models.Schedule{}, errors.NewInvalidQualityError(int(quality))
	}

	var interval int
	ease := InitialEase
	if prior == nil {
		interval = newCardIntervals[quality]
	} else {
		ease = nextEase(prior.EaseFactor, quality)
		interval = nextInterval(prior.IntervalDays, ease, quality)
	}

	return models.Schedule{
		IntervalDays:   interval,
		EaseFactor:     ease,
		NextReviewDate: now.Add(time.Duration(interval) * day),
	}, nil
}

func nextEase(prev float64, quality Quality) float64 {
	d := float64(5 - quality)
	return math.Max(MinEase, prev+(0.1-d*(0.08+d*0.02)))
}

func nextInterval(prev int, ease float64, quality Quality) int {
	switch quality {
	case Again:
		return 1
	case Hard:
		return max(1, round(float64(prev)*hardFactor))
	case Good:
		return round(float64(prev) * ease)
	default:
		return round(float64(round(float64(prev)*ease)) * easyBonus)
	}
}

func round(f float64) int {
	return int(math.Round(f))
}
