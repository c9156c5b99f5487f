package discovery

import (
	"fmt"
	"strings"

	"github.com/umputun/shelfscope/pkg/domain"
)

// Command is an engine input produced by a key or a button
type Command string

// enum of commands
const (
	CmdNone     Command = ""
	CmdLike     Command = "like"
	CmdDislike  Command = "dislike"
	CmdWishlist Command = "wishlist"
	CmdUndo     Command = "undo"
)

// ParseCommand converts a string to Command, error for unknown values
func ParseCommand(s string) (Command, error) {
	switch c := Command(strings.ToLower(s)); c {
	case CmdLike, CmdDislike, CmdWishlist, CmdUndo:
		return c, nil
	}
	return CmdNone, fmt.Errorf("unknown command %q", s)
}

// CommandForKey maps a keyboard key to a command. Arrows decide, ctrl+z or meta+z undo,
// everything else maps to CmdNone.
func CommandForKey(key string, ctrl, meta bool) Command {
	if ctrl || meta {
		if strings.EqualFold(key, "z") {
			return CmdUndo
		}
		return CmdNone
	}
	switch key {
	case "ArrowRight":
		return CmdLike
	case "ArrowLeft":
		return CmdDislike
	case "ArrowUp":
		return CmdWishlist
	}
	return CmdNone
}

// action returns queue action for deciding commands
func (c Command) action() (domain.Action, bool) {
	switch c {
	case CmdLike:
		return domain.ActionLike, true
	case CmdDislike:
		return domain.ActionDislike, true
	case CmdWishlist:
		return domain.ActionWishlist, true
	}
	return "", false
}
