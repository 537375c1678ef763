package models

import "time"

// ReviewEvent is one entry in the review ledger. Events are appended, never mutated.
// For a card, the event with the greatest (ReviewedAt, ID) is its current schedule.
type ReviewEvent struct {
	ID             int64     `json:"id"`
	CardID         int64     `json:"card_id"`
	ReviewedAt     time.Time `json:"reviewed_at"`
	Quality        int       `json:"quality"`
	IntervalDays   int       `json:"interval_days"`
	EaseFactor     float64   `json:"ease_factor"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// Schedule is the scheduler's output for one review.
type Schedule struct {
	IntervalDays   int       `json:"interval_days"`
	EaseFactor     float64   `json:"ease_factor"`
	NextReviewDate time.Time `json:"next_review_date"`
}
