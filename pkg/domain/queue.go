package domain

import "time"

// Action is a committed user choice on a discovery queue item
type Action string

// enum of queue actions
const (
	ActionLike     Action = "like"
	ActionDislike  Action = "dislike"
	ActionWishlist Action = "wishlist"
)

// Direction is the visual exit direction of a decided item
type Direction string

// enum of directions
const (
	DirectionNone  Direction = ""
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
	DirectionUp    Direction = "up"
)

// Direction returns exit direction for the action: like goes right, dislike left, wishlist up
func (a Action) Direction() Direction {
	switch a {
	case ActionLike:
		return DirectionRight
	case ActionDislike:
		return DirectionLeft
	case ActionWishlist:
		return DirectionUp
	}
	return DirectionNone
}

// Phase of the discovery queue state machine
type Phase string

// enum of phases
const (
	PhasePresenting Phase = "presenting"
	PhaseAnimating  Phase = "animating"
	PhaseExhausted  Phase = "exhausted"
)

// Decision is one committed forward transition of the queue
type Decision struct {
	ItemID    string    `json:"item_id"`
	Action    Action    `json:"action"`
	Direction Direction `json:"direction"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats counts non-undone decisions per action
type Stats struct {
	Liked      int `json:"liked"`
	Disliked   int `json:"disliked"`
	Wishlisted int `json:"wishlisted"`
}

// Total returns sum of all counters
func (s Stats) Total() int {
	return s.Liked + s.Disliked + s.Wishlisted
}

// QueueState is a value snapshot of the discovery queue, rendering is a projection of it
type QueueState struct {
	Items     []RecommendationItem `json:"items"`
	Index     int                  `json:"index"`
	Phase     Phase                `json:"phase"`
	Direction Direction            `json:"direction,omitempty"`
	Current   *RecommendationItem  `json:"current,omitempty"`
	History   []Decision           `json:"history"`
	Stats     Stats                `json:"stats"`
	Loading   bool                 `json:"loading"`
	Err       string               `json:"error,omitempty"`
	CanUndo   bool                 `json:"can_undo"`
	Remaining int                  `json:"remaining"`
}
