package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	repo   repository.CardRepository
	deckID int64
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)

	id, err := sqlite.NewDeckRepository(s.db).Insert(context.Background(), models.Deck{Name: "default", CreatedAt: base})
	s.Require().NoError(err)
	s.deckID = id
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Card{DeckID: s.deckID, Question: "2+2", Answer: "4", CreatedAt: base})
	s.Require().NoError(err)

	c, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal(models.Card{ID: id, DeckID: s.deckID, Question: "2+2", Answer: "4", CreatedAt: base}, *c)
}

func (s *CardRepositorySuite) TestInsert_UnknownDeck() {
	_, err := s.repo.Insert(context.Background(), models.Card{DeckID: s.deckID + 1, Question: "q", Answer: "a", CreatedAt: base})
	s.Assert().ErrorIs(err, repository.ErrMissingParent)
}

func (s *CardRepositorySuite) TestGet_NotFound() {
	_, err := s.repo.Get(context.Background(), 7)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
}

func (s *CardRepositorySuite) TestList_FilterAndLimit() {
	ctx := context.Background()
	other, err := sqlite.NewDeckRepository(s.db).Insert(ctx, models.Deck{Name: "other", CreatedAt: base})
	s.Require().NoError(err)

	a, _ := s.repo.Insert(ctx, models.Card{DeckID: s.deckID, Question: "a", Answer: "a", CreatedAt: base})
	b, _ := s.repo.Insert(ctx, models.Card{DeckID: other, Question: "b", Answer: "b", CreatedAt: base})
	c, _ := s.repo.Insert(ctx, models.Card{DeckID: s.deckID, Question: "c", Answer: "c", CreatedAt: base})

	all, err := s.repo.List(ctx, models.CardFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Assert().Equal([]int64{a, b, c}, []int64{all[0].ID, all[1].ID, all[2].ID})

	inDeck, err := s.repo.List(ctx, models.CardFilter{DeckID: s.deckID})
	s.Require().NoError(err)
	s.Require().Len(inDeck, 2)
	s.Assert().Equal(a, inDeck[0].ID)
	s.Assert().Equal(c, inDeck[1].ID)

	limited, err := s.repo.List(ctx, models.CardFilter{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Assert().Equal(a, limited[0].ID)
}

func (s *CardRepositorySuite) TestUpdate() {
	ctx := context.Background()
	id, _ := s.repo.Insert(ctx, models.Card{DeckID: s.deckID, Question: "q", Answer: "a", CreatedAt: base})

	answer := "b"
	s.Require().NoError(s.repo.Update(ctx, id, models.CardUpdate{Answer: &answer}))
	c, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("q", c.Question)
	s.Assert().Equal("b", c.Answer)

	s.Assert().ErrorIs(s.repo.Update(ctx, id+1, models.CardUpdate{Answer: &answer}), sql.ErrNoRows)

	missingDeck := s.deckID + 50
	s.Assert().Error(s.repo.Update(ctx, id, models.CardUpdate{DeckID: &missingDeck}))
}

func (s *CardRepositorySuite) TestDelete() {
	ctx := context.Background()
	id, _ := s.repo.Insert(ctx, models.Card{DeckID: s.deckID, Question: "q", Answer: "a", CreatedAt: base})

	s.Require().NoError(s.repo.Delete(ctx, id))
	s.Assert().ErrorIs(s.repo.Delete(ctx, id), sql.ErrNoRows)
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
