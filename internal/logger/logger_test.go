package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashdeck/internal/logger"
)

func newBufferLogger(level logger.Level) (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(func() time.Time { return fixed }),
	)
	return l, &buf
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(logger.WARN)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "2024-03-01 12:00:00.000 WARN ")
}

func TestFieldsAreSortedAndPrefixed(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	l.WithPrefix("review").WithFields(map[string]any{"zeta": 1, "alpha": "a"}).Info("done")

	out := buf.String()
	assert.Contains(t, out, "[review] ")
	assert.Contains(t, out, "done alpha=a zeta=1\n")
}

func TestDerivedLoggerDoesNotMutateParent(t *testing.T) {
	l, buf := newBufferLogger(logger.DEBUG)

	_ = l.WithField("card_id", 9)
	l.Info("parent")

	assert.NotContains(t, buf.String(), "card_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" error "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))

	assert.True(t, logger.ValidLevel("info"))
	assert.False(t, logger.ValidLevel("verbose"))
}

func TestContextRoundTrip(t *testing.T) {
	l, _ := newBufferLogger(logger.INFO)
	ctx := logger.NewContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
