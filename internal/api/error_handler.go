package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr := errors.As(err)

	// Log based on status code
	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

func notFoundRoute(r *http.Request) error {
	return &errors.AppError{Code: errors.ErrCodeNotFound, Message: "no route for " + r.URL.Path, Status: http.StatusNotFound}
}

func methodNotAllowed(r *http.Request) error {
	return &errors.AppError{Code: errors.ErrCodeBadRequest, Message: r.Method + " not allowed on " + r.URL.Path, Status: http.StatusMethodNotAllowed}
}
