package api

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/session"
)

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	Check(ctx context.Context) error
}

type Server struct {
	DeckService   services.DeckService
	CardService   services.CardService
	ReviewService services.ReviewService
	StatsService  services.StatsService
	Sessions      *session.Store
	DB            HealthChecker

	// ActivityWindowDays is the default stats window when a request gives none.
	ActivityWindowDays int
	RequestTimeout     time.Duration
	Now                func() time.Time
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *Server) windowDays() int {
	if s.ActivityWindowDays < 1 {
		return 365
	}
	return s.ActivityWindowDays
}
