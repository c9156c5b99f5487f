// Package discovery implements the discovery queue, a one-item-at-a-time state machine
// consuming like, dislike and wishlist decisions with undo and refresh.
//
// The engine owns its QueueState and mutates it only in the transition methods. A decision
// enters the animating phase and advances the cursor after a settle delay, no other decision
// or undo is accepted until then. Every pending callback carries the generation it was
// scheduled in and is ignored after refresh or close.
package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/shelfscope/pkg/domain"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/reporter.go -pkg mocks -skip-ensure -fmt goimports . Reporter

// Fetcher loads a fresh list of items for the queue
type Fetcher interface {
	DiscoveryQueue(ctx context.Context, limit int) ([]domain.RecommendationItem, error)
}

// Reporter sends interactions without blocking the caller
type Reporter interface {
	Report(itemID string, typ domain.InteractionType, metadata map[string]any)
}

// Options for the engine, all optional
type Options struct {
	Reporter     Reporter
	Fetcher      Fetcher
	SettleDelay  time.Duration // transition duration, 400ms by default
	RefreshLimit int           // number of items requested on refresh, 20 by default

	Now       func() time.Time
	AfterFunc func(d time.Duration, f func()) (stop func() bool)
}

// Engine is the discovery queue state machine, safe for concurrent use
type Engine struct {
	opts Options

	mu        sync.Mutex
	items     []domain.RecommendationItem
	index     int
	phase     domain.Phase
	direction domain.Direction
	history   *UndoStack
	stats     StatsTracker
	loading   bool
	errMsg    string

	gen           uint64      // bumped on refresh and close, stale callbacks compare against it
	stopSettle    func() bool // stops pending settle timer
	cancelRefresh context.CancelFunc
	closed        bool
}

// New makes an engine presenting the first item, or exhausted for an empty list
func New(items []domain.RecommendationItem, opts Options) *Engine {
	if opts.SettleDelay == 0 {
		opts.SettleDelay = 400 * time.Millisecond
	}
	if opts.RefreshLimit <= 0 {
		opts.RefreshLimit = 20
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	e := &Engine{opts: opts, history: NewUndoStack(len(items))}
	e.load(items)
	return e
}

// Decide commits an action on the current item. Returns false if the engine is not presenting an item,
// i.e. animating, exhausted, loading or closed.
func (e *Engine) Decide(action domain.Action) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.loading || e.phase != domain.PhasePresenting {
		lgr.Printf("[DEBUG] decide %s ignored in %s phase, loading=%v", action, e.phase, e.loading)
		return false
	}
	if action.Direction() == domain.DirectionNone {
		lgr.Printf("[WARN] unknown action %q ignored", action)
		return false
	}

	item := e.items[e.index]
	e.history.Push(domain.Decision{ItemID: item.ID, Action: action, Direction: action.Direction(), Timestamp: e.opts.Now()})
	e.stats.Add(action)
	e.phase = domain.PhaseAnimating
	e.direction = action.Direction()

	if e.opts.Reporter != nil {
		e.opts.Reporter.Report(item.ID, domain.InteractionFor(action),
			map[string]any{"source": "discovery_queue", "position": e.index})
	}

	gen := e.gen
	e.stopSettle = e.opts.AfterFunc(e.opts.SettleDelay, func() { e.settle(gen) })
	lgr.Printf("[DEBUG] %s %s (%d/%d)", action, item.ID, e.index+1, len(e.items))
	return true
}

// settle completes the transition started by Decide
func (e *Engine) settle(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || gen != e.gen || e.phase != domain.PhaseAnimating {
		return // stale callback
	}
	e.stopSettle = nil
	e.direction = domain.DirectionNone
	e.index++
	e.phase = phaseFor(e.index, len(e.items))
	if e.phase == domain.PhaseExhausted {
		lgr.Printf("[DEBUG] discovery queue exhausted, %+v", e.stats.Stats())
	}
}

// Undo reverts the last decision and presents its item again. Returns false if there is nothing to undo
// or a transition is in progress. The reported interaction is not retracted.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.loading || e.phase == domain.PhaseAnimating {
		return false
	}
	d, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.stats.Remove(d.Action)
	if e.index > 0 {
		e.index--
	}
	e.phase = phaseFor(e.index, len(e.items))
	e.direction = domain.DirectionNone
	lgr.Printf("[DEBUG] undo %s %s", d.Action, d.ItemID)
	return true
}

// Apply runs a command under the same guards as direct calls
func (e *Engine) Apply(cmd Command) bool {
	if cmd == CmdUndo {
		return e.Undo()
	}
	if a, ok := cmd.action(); ok {
		return e.Decide(a)
	}
	return false
}

// HandleKey maps a key press to a command and applies it
func (e *Engine) HandleKey(key string, ctrl, meta bool) (Command, bool) {
	cmd := CommandForKey(key, ctrl, meta)
	if cmd == CmdNone {
		return cmd, false
	}
	return cmd, e.Apply(cmd)
}

// Refresh replaces the queue with a freshly fetched list and resets history and stats.
// A pending transition is cancelled. On failure the queue is emptied and the error is kept
// in the state for a retry affordance. A refresh started while another one is loading is ignored.
// The fetch is bound to the engine lifetime, cancelling ctx doesn't abort it, Close does.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("engine closed: %w", context.Canceled)
	}
	if e.opts.Fetcher == nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: no fetcher", domain.ErrRefreshFailed)
	}
	if e.loading {
		e.mu.Unlock()
		lgr.Printf("[DEBUG] refresh already in progress")
		return nil
	}
	e.cancelPending()
	e.loading = true
	e.errMsg = ""
	gen := e.gen
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancelRefresh = cancel
	e.mu.Unlock()
	defer cancel()

	items, err := e.opts.Fetcher.DiscoveryQueue(ctx, e.opts.RefreshLimit)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		return fmt.Errorf("refresh discarded: %w", context.Canceled)
	}
	e.loading = false
	e.cancelRefresh = nil
	if err != nil {
		e.load(nil)
		e.errMsg = err.Error()
		lgr.Printf("[WARN] discovery queue refresh failed: %v", err)
		return fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}
	e.load(items)
	lgr.Printf("[INFO] discovery queue refreshed with %d items", len(items))
	return nil
}

// State returns a snapshot of the queue
func (e *Engine) State() domain.QueueState {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := domain.QueueState{
		Items:     make([]domain.RecommendationItem, len(e.items)),
		Index:     e.index,
		Phase:     e.phase,
		Direction: e.direction,
		History:   e.history.Items(),
		Stats:     e.stats.Stats(),
		Loading:   e.loading,
		Err:       e.errMsg,
		CanUndo:   e.history.Len() > 0 && e.phase != domain.PhaseAnimating && !e.loading && !e.closed,
		Remaining: len(e.items) - e.index,
	}
	copy(res.Items, e.items)
	if e.index < len(e.items) {
		cur := e.items[e.index]
		res.Current = &cur
	}
	return res
}

// SetWishlist updates the wishlist flag of an item in the queue, returns true if the item was found
func (e *Engine) SetWishlist(itemID string, on bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	found := false
	for i := range e.items {
		if e.items[i].ID == itemID {
			e.items[i].OnWishlist = on
			found = true
		}
	}
	return found
}

// Close ends engine lifetime, pending transition and refresh are cancelled and all later calls are no-ops
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.cancelPending()
	e.closed = true
}

// cancelPending invalidates scheduled callbacks and in-flight refresh, must be called under lock.
// Animating phase is resolved by completing the transition so the cursor matches the history.
func (e *Engine) cancelPending() {
	e.gen++
	if e.stopSettle != nil {
		e.stopSettle()
		e.stopSettle = nil
	}
	if e.cancelRefresh != nil {
		e.cancelRefresh()
		e.cancelRefresh = nil
	}
	if e.phase == domain.PhaseAnimating {
		e.index++
		e.direction = domain.DirectionNone
		e.phase = phaseFor(e.index, len(e.items))
	}
	e.loading = false
}

// load replaces items and resets cursor, history and stats, must be called under lock
func (e *Engine) load(items []domain.RecommendationItem) {
	e.items = make([]domain.RecommendationItem, len(items))
	copy(e.items, items)
	e.index = 0
	e.direction = domain.DirectionNone
	e.history.Reset(len(items))
	e.stats.Reset()
	e.phase = phaseFor(0, len(items))
}

func phaseFor(index, length int) domain.Phase {
	if index >= length {
		return domain.PhaseExhausted
	}
	return domain.PhasePresenting
}
