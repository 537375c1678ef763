// Command seed fills a database with two sample decks and a few reviews.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/services"
)

type seedDeck struct {
	name, description string
	cards             [][2]string
	ratings           []flashcard.Quality
}

var decks = []seedDeck{
	{
		name:        "Go Basics",
		description: "Core Go language concepts",
		cards: [][2]string{
			{"What does defer do?", "Schedules a call to run when the surrounding function returns, in LIFO order."},
			{"What is the zero value of a map?", "nil. Reading from it works, writing to it panics."},
			{"How do you start a goroutine?", "Prefix a function call with the go keyword."},
		},
		ratings: []flashcard.Quality{flashcard.Good, flashcard.Easy, flashcard.Hard},
	},
	{
		name:        "HTTP",
		description: "Protocol fundamentals",
		cards: [][2]string{
			{"Which methods are idempotent?", "GET, HEAD, PUT, DELETE, OPTIONS and TRACE."},
			{"What does status 409 mean?", "Conflict with the current state of the target resource."},
			{"What is the purpose of the ETag header?", "An opaque validator for conditional requests and caching."},
		},
	},
}

func main() {
	cfg := config.Load()
	dbPath := pflag.String("db", cfg.DBPath, "SQLite database path")
	reset := pflag.Bool("reset", false, "delete every existing deck before seeding")
	pflag.Parse()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)), logger.WithPrefix("seed"))
	logger.SetDefault(log)

	if err := run(logger.NewContext(context.Background(), log), *dbPath, *reset); err != nil {
		log.Error("seed failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath string, reset bool) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	return seed(ctx, database.DB, reset)
}

// seed writes the sample decks through the services, so the usual validation applies.
func seed(ctx context.Context, sqlDB *sql.DB, reset bool) error {
	log := logger.FromContext(ctx)

	deckRepo := sqlite.NewDeckRepository(sqlDB)
	cardRepo := sqlite.NewCardRepository(sqlDB)
	deckService := services.NewDeckService(deckRepo, nil)
	cardService := services.NewCardService(deckRepo, cardRepo, nil)
	reviewService := services.NewReviewService(deckRepo, cardRepo, sqlite.NewReviewRepository(sqlDB), nil)

	if reset {
		existing, err := deckService.ListDecks(ctx)
		if err != nil {
			return err
		}
		for _, d := range existing {
			if err := deckService.DeleteDeck(ctx, d.ID); err != nil {
				return err
			}
		}
		log.Info("removed %d decks", len(existing))
	}

	for _, sd := range decks {
		deck, err := deckService.CreateDeck(ctx, sd.name, sd.description)
		if err != nil {
			return fmt.Errorf("create deck %q: %w", sd.name, err)
		}
		for i, qa := range sd.cards {
			card, err := cardService.CreateCard(ctx, deck.ID, qa[0], qa[1])
			if err != nil {
				return fmt.Errorf("create card in %q: %w", sd.name, err)
			}
			if i < len(sd.ratings) {
				if _, err := reviewService.ReviewCard(ctx, card.ID, sd.ratings[i]); err != nil {
					return fmt.Errorf("review card %d: %w", card.ID, err)
				}
			}
		}
		log.Info("created deck %q with %d cards", deck.Name, len(sd.cards))
	}

	log.Info("seed completed")
	return nil
}
