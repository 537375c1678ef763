package api

import (
	"net/http"
	"time"
)

type activityResponse struct {
	From time.Time      `json:"from"`
	To   time.Time      `json:"to"`
	Days map[string]int `json:"days"`
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	from, to, err := window(r, s.now(), s.windowDays())
	if err != nil {
		handleError(w, r, err)
		return
	}
	days, err := s.StatsService.GetActivity(r.Context(), from, to)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, activityResponse{From: from, To: to, Days: days})
}

func (s *Server) handleStreaks(w http.ResponseWriter, r *http.Request) {
	from, to, err := window(r, s.now(), s.windowDays())
	if err != nil {
		handleError(w, r, err)
		return
	}
	stats, err := s.StatsService.GetStats(r.Context(), from, to)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	days, err := parseDays(r, s.windowDays())
	if err != nil {
		handleError(w, r, err)
		return
	}
	heatmap, err := s.StatsService.GetHeatmap(r.Context(), s.now(), days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, heatmap)
}
