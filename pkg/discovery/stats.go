package discovery

import "github.com/umputun/shelfscope/pkg/domain"

// StatsTracker counts decisions per action
type StatsTracker struct {
	stats domain.Stats
}

// Add increments the counter of the action
func (t *StatsTracker) Add(a domain.Action) {
	if c := t.counter(a); c != nil {
		*c++
	}
}

// Remove decrements the counter of the action, never below zero
func (t *StatsTracker) Remove(a domain.Action) {
	if c := t.counter(a); c != nil && *c > 0 {
		*c--
	}
}

// Reset clears all counters
func (t *StatsTracker) Reset() { t.stats = domain.Stats{} }

// Stats returns counters snapshot
func (t *StatsTracker) Stats() domain.Stats { return t.stats }

func (t *StatsTracker) counter(a domain.Action) *int {
	switch a {
	case domain.ActionLike:
		return &t.stats.Liked
	case domain.ActionDislike:
		return &t.stats.Disliked
	case domain.ActionWishlist:
		return &t.stats.Wishlisted
	}
	return nil
}
