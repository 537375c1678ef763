package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/models"
)

type createCardRequest struct {
	Question string `json:"question" validate:"required,max=10000"`
	Answer   string `json:"answer" validate:"required,max=10000"`
}

type updateCardRequest struct {
	DeckID   *int64  `json:"deck_id" validate:"omitempty,gt=0"`
	Question *string `json:"question" validate:"omitempty,min=1,max=10000"`
	Answer   *string `json:"answer" validate:"omitempty,min=1,max=10000"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	deckID, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	cards, err := s.CardService.ListCards(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	deckID, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateCard(r.Context(), deckID, req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.CardService.GetCard(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req updateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.UpdateCard(r.Context(), id, models.CardUpdate{
		DeckID:   req.DeckID,
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.CardService.DeleteCard(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
