// Package session keeps per-page state of the recommendations UI: the composite feed fetched on
// page load, the discovery queue engine and the interaction reporter bound to the page lifetime.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/umputun/shelfscope/pkg/discovery"
	"github.com/umputun/shelfscope/pkg/domain"
	"github.com/umputun/shelfscope/pkg/feed"
	"github.com/umputun/shelfscope/pkg/reporter"
)

//go:generate moq -out mocks/upstream.go -pkg mocks -skip-ensure -fmt goimports . Upstream

// errors returned by the manager
var (
	ErrNotFound    = errors.New("session not found")
	ErrForbidden   = errors.New("session belongs to another token")
	ErrUnknownItem = errors.New("item not in session")
)

// Upstream is everything a session needs from the recommendation service
type Upstream interface {
	feed.Source
	ReportInteraction(ctx context.Context, in domain.Interaction) error
	Similar(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error)
}

// ClientFactory makes an upstream client for the token, onAuthExpired must be called on 401 responses
type ClientFactory func(token string, onAuthExpired func()) Upstream

// Options for the manager
type Options struct {
	Specs         []feed.SourceSpec // composite feed sections, feed.DefaultSpecs if empty
	SourceTimeout time.Duration
	QueueLimit    int // discovery queue refresh size
	SettleDelay   time.Duration
	ReportTimeout time.Duration
	Sink          reporter.Sink // optional journal of interaction results
	TTL           time.Duration // idle time before session is dropped
	MaxSessions   int
	BaseContext   context.Context // process lifetime
}

// Manager creates and keeps sessions
type Manager struct {
	factory ClientFactory
	opts    Options
	cache   *expirable.LRU[string, *Session]
}

// Session is a single page lifetime
type Session struct {
	ID        string
	CreatedAt time.Time

	token       string
	client      Upstream
	engine      *discovery.Engine
	reporter    *reporter.Reporter
	authExpired atomic.Bool

	mu   sync.Mutex
	feed domain.CompositeFeed
}

// NewManager makes a session manager
func NewManager(factory ClientFactory, opts Options) *Manager {
	if len(opts.Specs) == 0 {
		opts.Specs = feed.DefaultSpecs(feed.Limits{Timeout: opts.SourceTimeout})
	}
	if opts.TTL == 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = 1000
	}
	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}
	m := &Manager{factory: factory, opts: opts}
	m.cache = expirable.NewLRU[string, *Session](opts.MaxSessions, func(id string, s *Session) {
		s.close()
		lgr.Printf("[DEBUG] session %s closed", id)
	}, opts.TTL)
	return m
}

// Create fetches the composite feed for the token and starts a session with the discovery queue
// seeded from the feed. With non-empty userID the featured section lists personal recommendations
// of that user. Returns domain.ErrAuthExpired if the token was rejected and nothing loaded.
func (m *Manager) Create(ctx context.Context, token, userID string) (*Session, error) {
	s := &Session{ID: uuid.NewString(), CreatedAt: time.Now(), token: token}
	s.client = m.factory(token, func() { s.authExpired.Store(true) })

	orch := feed.NewOrchestrator(s.client, feed.Options{Timeout: m.opts.SourceTimeout})
	composite := orch.FetchComposite(ctx, feed.ForUser(m.opts.Specs, userID))
	if composite.AuthExpired() && !anyLoaded(composite) {
		return nil, fmt.Errorf("create session: %w", domain.ErrAuthExpired)
	}
	s.feed = composite

	s.reporter = reporter.New(s.client, reporter.Options{
		Timeout:     m.opts.ReportTimeout,
		BaseContext: m.opts.BaseContext,
		Sink:        m.opts.Sink,
		Logger:      lgr.Default(),
	})

	var items []domain.RecommendationItem
	if q := composite.Section(domain.SectionDiscoveryQueue); q.Status == domain.StatusLoaded {
		items = q.Items
	}
	s.engine = discovery.New(items, discovery.Options{
		Reporter:     s.reporter,
		Fetcher:      s.client,
		SettleDelay:  m.opts.SettleDelay,
		RefreshLimit: m.opts.QueueLimit,
	})

	m.cache.Add(s.ID, s)
	lgr.Printf("[INFO] session %s created, queue %d items, failed sections %v", s.ID, len(items), composite.Failed())
	return s, nil
}

// Get returns the session for the id if it belongs to the token, access renews session ttl
func (m *Manager) Get(id, token string) (*Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if subtle.ConstantTimeCompare([]byte(s.token), []byte(token)) != 1 {
		return nil, ErrForbidden
	}
	if s.authExpired.Load() {
		m.cache.Remove(id)
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrAuthExpired)
	}
	m.cache.Add(id, s)
	return s, nil
}

// Close tears down the session, pending transitions are cancelled and new reports are dropped
func (m *Manager) Close(id, token string) error {
	if _, err := m.Get(id, token); err != nil {
		return err
	}
	m.cache.Remove(id)
	return nil
}

// Len returns number of active sessions
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Shutdown closes all sessions and waits for their in-flight reports
func (m *Manager) Shutdown() {
	sessions := m.cache.Values()
	m.cache.Purge()
	for _, s := range sessions {
		s.wait()
	}
}

// Feed returns a copy of the composite feed
func (s *Session) Feed() domain.CompositeFeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed.Clone()
}

// Queue returns the discovery queue state
func (s *Session) Queue() domain.QueueState {
	return s.engine.State()
}

// Apply runs a queue command, returns true if it was accepted
func (s *Session) Apply(cmd discovery.Command) bool {
	return s.engine.Apply(cmd)
}

// HandleKey maps a key press to a queue command and applies it
func (s *Session) HandleKey(key string, ctrl, meta bool) (discovery.Command, bool) {
	return s.engine.HandleKey(key, ctrl, meta)
}

// Refresh reloads the discovery queue
func (s *Session) Refresh(ctx context.Context) error {
	return s.engine.Refresh(ctx)
}

// ReportInteraction reports an interaction with a feed item, e.g. a click on a card
func (s *Session) ReportInteraction(itemID string, typ domain.InteractionType, metadata map[string]any) {
	s.reporter.Report(itemID, typ, metadata)
}

// ToggleWishlist flips the wishlist flag of the item in the feed and the queue and reports the change.
// Returns the new flag value.
func (s *Session) ToggleWishlist(itemID string) (bool, error) {
	s.mu.Lock()
	on, found := s.wishlisted(itemID)
	if !found {
		s.mu.Unlock()
		return false, ErrUnknownItem
	}
	on = !on
	s.feed.SetWishlist(itemID, on)
	s.mu.Unlock()

	s.engine.SetWishlist(itemID, on)
	typ := domain.InteractionWishlistRemove
	if on {
		typ = domain.InteractionWishlistAdd
	}
	s.reporter.Report(itemID, typ, map[string]any{"source": "bookmark"})
	return on, nil
}

// wishlisted looks up current wishlist flag in the feed and the queue, must be called under lock
func (s *Session) wishlisted(itemID string) (on, found bool) {
	for _, sec := range s.feed.Sections {
		for _, it := range sec.Items {
			if it.ID == itemID {
				return it.OnWishlist, true
			}
		}
		for _, g := range sec.Borrowed {
			if g.Source.ID == itemID {
				return g.Source.OnWishlist, true
			}
			for _, it := range g.Items {
				if it.ID == itemID {
					return it.OnWishlist, true
				}
			}
		}
		for _, a := range sec.Authors {
			if a.Latest.ID == itemID {
				return a.Latest.OnWishlist, true
			}
		}
	}
	for _, it := range s.engine.State().Items {
		if it.ID == itemID {
			return it.OnWishlist, true
		}
	}
	return false, false
}

// Similar returns items similar to the given one, wishlist flags known to the session are applied
func (s *Session) Similar(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error) {
	items, err := s.client.Similar(ctx, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("similar to %s: %w", itemID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range items {
		if on, found := s.wishlisted(items[i].ID); found {
			items[i].OnWishlist = on
		}
	}
	return items, nil
}

// wait blocks until in-flight reports of the session are done
func (s *Session) wait() {
	s.reporter.Wait()
}

func (s *Session) close() {
	s.engine.Close()
	s.reporter.Close()
}

func anyLoaded(f domain.CompositeFeed) bool {
	for _, s := range f.Sections {
		if s.Status != domain.StatusFailed {
			return true
		}
	}
	return false
}
