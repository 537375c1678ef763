package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/vytor/flashdeck/internal/logger"
)

type Config struct {
	Addr               string `env:"ADDR" validate:"required"`
	DBPath             string `env:"DB_PATH" validate:"required"`
	LogLevel           string `env:"LOG_LEVEL" validate:"loglevel"`
	ActivityWindowDays int    `env:"ACTIVITY_WINDOW_DAYS" validate:"min=1,max=3660"`
	SessionLimit       int    `env:"SESSION_LIMIT" validate:"min=0"`
	SessionTTLMinutes  int    `env:"SESSION_TTL_MINUTES" validate:"min=1"`
	ReadTimeoutSecs    int    `env:"READ_TIMEOUT_SECONDS" validate:"min=1"`
	WriteTimeoutSecs   int    `env:"WRITE_TIMEOUT_SECONDS" validate:"min=1"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or unparsable.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		ActivityWindowDays: envIntOr("ACTIVITY_WINDOW_DAYS", 365),
		SessionLimit:       envIntOr("SESSION_LIMIT", 0),
		SessionTTLMinutes:  envIntOr("SESSION_TTL_MINUTES", 120),
		ReadTimeoutSecs:    envIntOr("READ_TIMEOUT_SECONDS", 15),
		WriteTimeoutSecs:   envIntOr("WRITE_TIMEOUT_SECONDS", 30),
	}
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSecs) * time.Second
}

func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecs) * time.Second
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return logger.ValidLevel(fl.Field().String())
	})
	return v
}

// Validate checks every field and reports all failures at once, keyed by env name.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " cannot be empty"
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "loglevel":
		return fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
