package discovery

import "github.com/umputun/shelfscope/pkg/domain"

// UndoStack keeps committed decisions, the oldest entry is dropped when capacity is reached
type UndoStack struct {
	entries  []domain.Decision
	capacity int
}

// NewUndoStack makes a stack with the given capacity, zero or negative capacity means unbounded
func NewUndoStack(capacity int) *UndoStack {
	return &UndoStack{capacity: capacity, entries: make([]domain.Decision, 0, max(capacity, 0))}
}

// Push adds a decision on top
func (s *UndoStack) Push(d domain.Decision) {
	if s.capacity > 0 && len(s.entries) >= s.capacity {
		s.entries = append(s.entries[:0], s.entries[1:]...)
	}
	s.entries = append(s.entries, d)
}

// Pop removes and returns the last decision
func (s *UndoStack) Pop() (domain.Decision, bool) {
	if len(s.entries) == 0 {
		return domain.Decision{}, false
	}
	d := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return d, true
}

// Len returns number of decisions in the stack
func (s *UndoStack) Len() int { return len(s.entries) }

// Items returns a copy of the decisions, oldest first
func (s *UndoStack) Items() []domain.Decision {
	res := make([]domain.Decision, len(s.entries))
	copy(res, s.entries)
	return res
}

// Reset drops all decisions and sets a new capacity
func (s *UndoStack) Reset(capacity int) {
	s.capacity = capacity
	s.entries = s.entries[:0]
}
