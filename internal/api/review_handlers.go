package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
)

type reviewRequest struct {
	Rating *flashcard.Rating `json:"rating" validate:"required"`
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"card_id": id,
		"quality": req.Rating.Quality.String(),
	})
	log.Debug("reviewing card")

	event, err := s.ReviewService.ReviewCard(r.Context(), id, req.Rating.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("card reviewed successfully")
	writeJSON(w, r, http.StatusCreated, event)
}

func (s *Server) handleCardReviews(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	events, err := s.ReviewService.History(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, events)
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := parseOptionalID(r, "deck_id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cards, err := s.ReviewService.GetCardsForReview(r.Context(), s.now(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}
