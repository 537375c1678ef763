package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashdeck/internal/errors"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	cause := stderrors.New("disk full")
	err := fmt.Errorf("review card: %w", errors.NewPersistenceError("insert review", cause))

	assert.ErrorIs(t, err, errors.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, errors.ErrUnknownCard)

	assert.ErrorIs(t, errors.NewUnknownCardError(7), errors.ErrUnknownCard)
	assert.ErrorIs(t, errors.NewInvalidQualityError(9), errors.ErrInvalidQuality)
}

func TestAs(t *testing.T) {
	appErr := errors.As(fmt.Errorf("wrapped: %w", errors.NewUnknownCardError(3)))
	assert.Equal(t, errors.ErrCodeUnknownCard, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	plain := errors.As(stderrors.New("boom"))
	assert.Equal(t, errors.ErrCodeInternal, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: deck not found: 4", errors.NewNotFoundError("deck", 4).Error())
	assert.Contains(t, errors.NewInvalidQualityError("meh").Error(), "INVALID_QUALITY")
}
