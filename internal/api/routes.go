package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	if s.RequestTimeout > 0 {
		r.Use(timeoutMiddleware(s.RequestTimeout))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, notFoundRoute(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, methodNotAllowed(r))
	})

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Get("/{id}", s.handleGetDeck)
			r.Put("/{id}", s.handleUpdateDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
			r.Get("/{id}/cards", s.handleListCards)
			r.Post("/{id}/cards", s.handleCreateCard)
		})

		r.Route("/cards/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetCard)
			r.Put("/", s.handleUpdateCard)
			r.Delete("/", s.handleDeleteCard)
			r.Get("/reviews", s.handleCardReviews)
			r.Post("/review", s.handleReviewCard)
		})

		r.Get("/review/due", s.handleDueCards)

		r.Get("/stats/activity", s.handleActivity)
		r.Get("/stats/streaks", s.handleStreaks)
		r.Get("/stats/heatmap", s.handleHeatmap)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleAbandonSession)
			r.Post("/{id}/review", s.handleSessionReview)
		})

		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleCallTool)
	})
	return r
}
