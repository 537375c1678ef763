package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/testutil"
)

type DeckRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.DeckRepository
	cards   repository.CardRepository
	reviews repository.ReviewRepository
}

func (s *DeckRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDeckRepository(s.db)
	s.cards = sqlite.NewCardRepository(s.db)
	s.reviews = sqlite.NewReviewRepository(s.db)
}

func (s *DeckRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DeckRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Deck{Name: "Spanish", Description: "verbs", CreatedAt: base})
	s.Require().NoError(err)

	d, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.Deck{ID: id, Name: "Spanish", Description: "verbs", CreatedAt: base}, *d)
}

func (s *DeckRepositorySuite) TestGet_NotFound() {
	_, err := s.repo.Get(context.Background(), 42)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *DeckRepositorySuite) TestInsert_DuplicateName() {
	ctx := context.Background()
	_, err := s.repo.Insert(ctx, models.Deck{Name: "dup", CreatedAt: base})
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, models.Deck{Name: "dup", CreatedAt: base})
	s.Assert().ErrorIs(err, repository.ErrDuplicate)
}

func (s *DeckRepositorySuite) TestList_OrderedByID() {
	ctx := context.Background()
	b, _ := s.repo.Insert(ctx, models.Deck{Name: "b", CreatedAt: base})
	a, _ := s.repo.Insert(ctx, models.Deck{Name: "a", CreatedAt: base})

	decks, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(decks, 2)
	s.Assert().Equal(b, decks[0].ID)
	s.Assert().Equal(a, decks[1].ID)
}

func (s *DeckRepositorySuite) TestUpdate() {
	ctx := context.Background()
	id, _ := s.repo.Insert(ctx, models.Deck{Name: "old", Description: "keep", CreatedAt: base})
	other, _ := s.repo.Insert(ctx, models.Deck{Name: "taken", CreatedAt: base})

	name := "new"
	s.Require().NoError(s.repo.Update(ctx, id, models.DeckUpdate{Name: &name}))
	d, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("new", d.Name)
	s.Assert().Equal("keep", d.Description)

	taken := "taken"
	s.Assert().ErrorIs(s.repo.Update(ctx, id, models.DeckUpdate{Name: &taken}), repository.ErrDuplicate)
	s.Assert().ErrorIs(s.repo.Update(ctx, other+100, models.DeckUpdate{Name: &name}), sql.ErrNoRows)
	s.Assert().NoError(s.repo.Update(ctx, id, models.DeckUpdate{}))
	s.Assert().ErrorIs(s.repo.Update(ctx, other+100, models.DeckUpdate{}), sql.ErrNoRows)
}

func (s *DeckRepositorySuite) TestDelete_CascadesToCardsAndReviews() {
	ctx := context.Background()
	id, _ := s.repo.Insert(ctx, models.Deck{Name: "gone", CreatedAt: base})
	cardID, err := s.cards.Insert(ctx, models.Card{DeckID: id, Question: "q", Answer: "a", CreatedAt: base})
	s.Require().NoError(err)
	_, err = s.reviews.InsertReview(ctx, models.ReviewEvent{
		CardID: cardID, ReviewedAt: base, Quality: 4, IntervalDays: 4, EaseFactor: 2.5, NextReviewDate: base.AddDate(0, 0, 4),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Delete(ctx, id))

	_, err = s.cards.Get(ctx, cardID)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n))
	s.Assert().Zero(n)

	s.Assert().ErrorIs(s.repo.Delete(ctx, id), sql.ErrNoRows)
}

func (s *DeckRepositorySuite) TestSummaries() {
	ctx := context.Background()
	now := base.Add(72 * time.Hour)

	full, _ := s.repo.Insert(ctx, models.Deck{Name: "full", CreatedAt: base})
	empty, _ := s.repo.Insert(ctx, models.Deck{Name: "empty", CreatedAt: base})

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := s.cards.Insert(ctx, models.Card{DeckID: full, Question: "q", Answer: "a", CreatedAt: base})
		s.Require().NoError(err)
		ids = append(ids, id)
	}
	// ids[0] new, ids[1] overdue, ids[2] reviewed twice with the latest pushing it out
	add := func(cardID int64, at time.Time, interval int) {
		_, err := s.reviews.InsertReview(ctx, models.ReviewEvent{
			CardID: cardID, ReviewedAt: at, Quality: 3, IntervalDays: interval, EaseFactor: 2.5,
			NextReviewDate: at.AddDate(0, 0, interval),
		})
		s.Require().NoError(err)
	}
	add(ids[1], base, 1)
	add(ids[2], base, 1)
	add(ids[2], base.Add(48*time.Hour), 6)

	sums, err := s.repo.Summaries(ctx, now)
	s.Require().NoError(err)
	s.Require().Len(sums, 2)

	s.Assert().Equal(full, sums[0].ID)
	s.Assert().Equal(3, sums[0].CardCount)
	s.Assert().Equal(2, sums[0].DueCount)

	s.Assert().Equal(empty, sums[1].ID)
	s.Assert().Zero(sums[1].CardCount)
	s.Assert().Zero(sums[1].DueCount)
}

func TestDeckRepositorySuite(t *testing.T) {
	suite.Run(t, new(DeckRepositorySuite))
}
