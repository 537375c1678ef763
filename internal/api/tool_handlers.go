package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/activity"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
)

// tool is an agent-callable operation. Arguments arrive as a JSON object.
type tool struct {
	Description string
	call        func(s *Server, ctx context.Context, args json.RawMessage) (any, error)
}

type toolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolResult struct {
	Content []toolContent `json:"content"`
}

type deckArgs struct {
	DeckID int64 `json:"deck_id" validate:"required,gt=0"`
}

type optionalDeckArgs struct {
	DeckID int64 `json:"deck_id" validate:"gte=0"`
}

type reviewArgs struct {
	CardID int64             `json:"card_id" validate:"required,gt=0"`
	Rating *flashcard.Rating `json:"rating" validate:"required"`
}

type windowArgs struct {
	Days int `json:"days" validate:"gte=0,lte=3660"`
}

var tools = map[string]tool{
	"list_decks": {
		Description: "Get all available flashcard decks with card and due counts",
		call: func(s *Server, ctx context.Context, _ json.RawMessage) (any, error) {
			return s.DeckService.ListDecks(ctx)
		},
	},
	"list_cards": {
		Description: "List the cards of a deck",
		call: func(s *Server, ctx context.Context, raw json.RawMessage) (any, error) {
			var args deckArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return s.CardService.ListCards(ctx, args.DeckID)
		},
	},
	"cards_for_review": {
		Description: "List cards due for review now, optionally for one deck",
		call: func(s *Server, ctx context.Context, raw json.RawMessage) (any, error) {
			var args optionalDeckArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return s.ReviewService.GetCardsForReview(ctx, s.now(), args.DeckID)
		},
	},
	"review_card": {
		Description: "Record a review of a card with rating 1-4 or again/hard/good/easy",
		call: func(s *Server, ctx context.Context, raw json.RawMessage) (any, error) {
			var args reviewArgs
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return s.ReviewService.ReviewCard(ctx, args.CardID, args.Rating.Quality)
		},
	},
	"get_activity": {
		Description: "Review counts per UTC day over the last N days (argument days)",
		call: func(s *Server, ctx context.Context, raw json.RawMessage) (any, error) {
			from, to, err := s.toolWindow(raw)
			if err != nil {
				return nil, err
			}
			return s.StatsService.GetActivity(ctx, from, to)
		},
	},
	"get_stats": {
		Description: "Total reviews and streaks over the last N days (argument days)",
		call: func(s *Server, ctx context.Context, raw json.RawMessage) (any, error) {
			from, to, err := s.toolWindow(raw)
			if err != nil {
				return nil, err
			}
			return s.StatsService.GetStats(ctx, from, to)
		},
	},
}

func (s *Server) toolWindow(raw json.RawMessage) (time.Time, time.Time, error) {
	var args windowArgs
	if err := decodeArgs(raw, &args); err != nil {
		return time.Time{}, time.Time{}, err
	}
	days := args.Days
	if days == 0 {
		days = s.windowDays()
	}
	to := s.now()
	return activity.StartOfDay(to).AddDate(0, 0, -(days - 1)), to, nil
}

func decodeArgs(raw json.RawMessage, dst any) error {
	return decodeFrom(bytes.NewReader(raw), dst)
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	type toolInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	out := make([]toolInfo, 0, len(tools))
	for name, t := range tools {
		out = append(out, toolInfo{Name: name, Description: t.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := logger.FromContext(r.Context()).WithField("tool", name)

	t, ok := tools[name]
	if !ok {
		handleError(w, r, errors.NewNotFoundError("tool", name))
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read body"))
		return
	}

	result, err := t.call(s, r.Context(), raw)
	if err != nil {
		handleError(w, r, err)
		return
	}
	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log.Debug("tool call completed")
	writeJSON(w, r, http.StatusOK, toolResult{Content: []toolContent{{Type: "text", Text: string(text)}}})
}
