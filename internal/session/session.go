// Package session runs study sessions over a fixed snapshot of the due set.
//
// A session selects due cards once, shuffles them with a seed recorded on the
// session, and hands them out in that order. Only Submit writes to the review
// ledger; abandoning or expiring a session has no effect on card schedules.
package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// Reviewer is the subset of the review service a session needs.
type Reviewer interface {
	ReviewCard(ctx context.Context, cardID int64, quality flashcard.Quality) (*models.ReviewEvent, error)
	GetCardsForReview(ctx context.Context, now time.Time, deckID int64) ([]models.DueCard, error)
}

// Options configures a new session. Zero values mean all decks, the store's
// default limit and a fresh random seed.
type Options struct {
	DeckID int64
	Limit  int
	Seed   *int64
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID        string           `json:"id"`
	DeckID    int64            `json:"deck_id,omitempty"`
	Seed      int64            `json:"seed"`
	Total     int              `json:"total"`
	Reviewed  int              `json:"reviewed"`
	Current   *models.DueCard  `json:"current"`
	Remaining []models.DueCard `json:"remaining"`
	StartedAt time.Time        `json:"started_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Done reports whether every card in the session has been reviewed.
func (s Snapshot) Done() bool {
	return s.Current == nil
}

// session fields other than expiresAt are guarded by mu. expiresAt is written
// only while holding both mu and Store.mu, so either lock suffices to read it.
type session struct {
	mu        sync.Mutex
	id        string
	deckID    int64
	seed      int64
	queue     []models.DueCard
	total     int
	startedAt time.Time
	expiresAt time.Time
}

func (s *session) snapshot() Snapshot {
	snap := Snapshot{
		ID:        s.id,
		DeckID:    s.deckID,
		Seed:      s.seed,
		Total:     s.total,
		Reviewed:  s.total - len(s.queue),
		Remaining: append([]models.DueCard{}, s.queue...),
		StartedAt: s.startedAt,
		ExpiresAt: s.expiresAt,
	}
	if len(s.queue) > 0 {
		head := s.queue[0]
		snap.Current = &head
	}
	return snap
}

// Store keeps sessions in memory, keyed by id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session

	reviewer     Reviewer
	ttl          time.Duration
	defaultLimit int
	now          func() time.Time
	newSeed      func() int64
}

type Option func(*Store)

// WithClock overrides the time source used for snapshots and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithSeedSource(f func() int64) Option {
	return func(s *Store) { s.newSeed = f }
}

// NewStore creates a session store. A defaultLimit of 0 means unlimited.
func NewStore(reviewer Reviewer, ttl time.Duration, defaultLimit int, opts ...Option) *Store {
	s := &Store{
		sessions:     make(map[string]*session),
		reviewer:     reviewer,
		ttl:          ttl,
		defaultLimit: defaultLimit,
		now:          time.Now,
		newSeed:      rand.Int64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start snapshots the due set and creates a session over it.
func (s *Store) Start(ctx context.Context, opts Options) (Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("session")

	if opts.Limit < 0 {
		return Snapshot{}, errors.NewValidationError("limit", "must not be negative")
	}
	now := s.now().UTC()
	due, err := s.reviewer.GetCardsForReview(ctx, now, opts.DeckID)
	if err != nil {
		return Snapshot{}, err
	}

	seed := s.newSeed()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	queue := Shuffle(due, seed)

	limit := s.defaultLimit
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}

	sess := &session{
		id:        uuid.NewString(),
		deckID:    opts.DeckID,
		seed:      seed,
		queue:     queue,
		total:     len(queue),
		startedAt: now,
		expiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log.Info("session started: id=%s, deck_id=%d, cards=%d, seed=%d", sess.id, opts.DeckID, len(queue), seed)
	return sess.snapshot(), nil
}

// Shuffle returns a copy of cards in a permutation fixed by seed.
func Shuffle(cards []models.DueCard, seed int64) []models.DueCard {
	out := append([]models.DueCard{}, cards...)
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (s *Store) Get(id string) (Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Submit rates the card at the head of the queue and advances the session.
// Rating any other card is rejected without touching the ledger.
func (s *Store) Submit(ctx context.Context, id string, cardID int64, quality flashcard.Quality) (*models.ReviewEvent, Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("session").WithField("session_id", id)

	sess, err := s.lookup(id)
	if err != nil {
		return nil, Snapshot{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.queue) == 0 {
		return nil, sess.snapshot(), errors.NewBadRequestError("session has no cards left")
	}
	if head := sess.queue[0].ID; head != cardID {
		log.Warn("rejected out-of-order review: card_id=%d, head=%d", cardID, head)
		return nil, sess.snapshot(), errors.NewBadRequestError("card is not the current card of this session")
	}

	event, err := s.reviewer.ReviewCard(ctx, cardID, quality)
	if err != nil {
		if errors.Is(err, errors.ErrUnknownCard) {
			// deleted since the snapshot; it can never be reviewed
			sess.queue = sess.queue[1:]
			sess.total--
		}
		return nil, sess.snapshot(), err
	}
	sess.queue = sess.queue[1:]
	s.mu.Lock()
	sess.expiresAt = s.now().UTC().Add(s.ttl)
	s.mu.Unlock()

	log.Debug("card reviewed in session: card_id=%d, remaining=%d", cardID, len(sess.queue))
	return event, sess.snapshot(), nil
}

// Abandon discards a session. No reviews are recorded.
func (s *Store) Abandon(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return errors.NewNotFoundError("session", id)
	}
	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.expiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	log := logger.FromContext(ctx).WithPrefix("session")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug("expired %d sessions", n)
			}
		}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) lookup(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, id)
		return nil, errors.NewNotFoundError("session", id)
	}
	return sess, nil
}
