package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/session"
)

type startSessionRequest struct {
	DeckID int64  `json:"deck_id" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0"`
	Seed   *int64 `json:"seed"`
}

type sessionReviewRequest struct {
	CardID int64             `json:"card_id" validate:"required,gt=0"`
	Rating *flashcard.Rating `json:"rating" validate:"required"`
}

type sessionReviewResponse struct {
	Review  *models.ReviewEvent `json:"review"`
	Session session.Snapshot    `json:"session"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.Sessions.Start(r.Context(), session.Options{DeckID: req.DeckID, Limit: req.Limit, Seed: req.Seed})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, snap)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleSessionReview(w http.ResponseWriter, r *http.Request) {
	var req sessionReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	event, snap, err := s.Sessions.Submit(r.Context(), chi.URLParam(r, "id"), req.CardID, req.Rating.Quality)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionReviewResponse{Review: event, Session: snap})
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Abandon(chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
