package models

import "time"

type Deck struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeckSummary is a deck with counts as of a given instant.
type DeckSummary struct {
	Deck
	CardCount int `json:"card_count"`
	DueCount  int `json:"due_count"`
}

type Card struct {
	ID        int64     `json:"id"`
	DeckID    int64     `json:"deck_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// CardUpdate carries the fields of an explicit edit. Nil fields are left unchanged.
type CardUpdate struct {
	DeckID   *int64
	Question *string
	Answer   *string
}

type DeckUpdate struct {
	Name        *string
	Description *string
}

// DueCard is a card selected for study. NextReviewDate is nil for cards never reviewed.
type DueCard struct {
	Card
	NextReviewDate *time.Time `json:"next_review_date"`
}

// IsNew reports whether the card has no review on record.
func (c DueCard) IsNew() bool {
	return c.NextReviewDate == nil
}

// CardFilter narrows card listings. Zero values mean "no restriction".
type CardFilter struct {
	DeckID int64
	Limit  int
}
