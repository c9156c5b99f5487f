package domain

import (
	"fmt"
	"time"
)

// InteractionType is the kind of user event reported upstream
type InteractionType string

// enum of interaction types
const (
	InteractionView           InteractionType = "view"
	InteractionBorrow         InteractionType = "borrow"
	InteractionLike           InteractionType = "like"
	InteractionDislike        InteractionType = "dislike"
	InteractionWishlist       InteractionType = "wishlist"
	InteractionClick          InteractionType = "click"
	InteractionWishlistAdd    InteractionType = "wishlist_add"
	InteractionWishlistRemove InteractionType = "wishlist_remove"
)

// ParseInteractionType converts a string to InteractionType, error for unknown values
func ParseInteractionType(s string) (InteractionType, error) {
	switch t := InteractionType(s); t {
	case InteractionView, InteractionBorrow, InteractionLike, InteractionDislike, InteractionWishlist,
		InteractionClick, InteractionWishlistAdd, InteractionWishlistRemove:
		return t, nil
	}
	return "", fmt.Errorf("unknown interaction type %q", s)
}

// InteractionFor maps a queue action to the reported interaction type
func InteractionFor(a Action) InteractionType {
	return InteractionType(a)
}

// Interaction is a single event record sent to the upstream reporting endpoint
type Interaction struct {
	ItemID   string          `json:"book_id"`
	Type     InteractionType `json:"interaction_type"`
	Metadata map[string]any  `json:"metadata"`
}

// InteractionResult is the outcome of one report, never surfaced to the user
type InteractionResult struct {
	Interaction
	Err      error
	Duration time.Duration
	At       time.Time
}
