package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/shelfscope/pkg/domain"
)

func TestUndoStack(t *testing.T) {
	s := NewUndoStack(2)
	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push(domain.Decision{ItemID: "a"})
	s.Push(domain.Decision{ItemID: "b"})
	s.Push(domain.Decision{ItemID: "c"})
	require.Equal(t, 2, s.Len(), "oldest dropped at capacity")
	assert.Equal(t, "b", s.Items()[0].ItemID)

	d, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "c", d.ItemID)
	assert.Equal(t, 1, s.Len())

	s.Reset(0)
	assert.Equal(t, 0, s.Len())
	for i := 0; i < 5; i++ {
		s.Push(domain.Decision{})
	}
	assert.Equal(t, 5, s.Len(), "unbounded")
}

func TestStatsTracker(t *testing.T) {
	var st StatsTracker
	st.Add(domain.ActionLike)
	st.Add(domain.ActionLike)
	st.Add(domain.ActionWishlist)
	st.Add("bogus")
	assert.Equal(t, domain.Stats{Liked: 2, Wishlisted: 1}, st.Stats())

	st.Remove(domain.ActionDislike)
	st.Remove(domain.ActionWishlist)
	st.Remove(domain.ActionWishlist)
	assert.Equal(t, domain.Stats{Liked: 2}, st.Stats(), "floored at zero")

	st.Reset()
	assert.Equal(t, 0, st.Stats().Total())
}

func TestCommandForKey(t *testing.T) {
	tbl := []struct {
		key        string
		ctrl, meta bool
		want       Command
	}{
		{"ArrowRight", false, false, CmdLike},
		{"ArrowLeft", false, false, CmdDislike},
		{"ArrowUp", false, false, CmdWishlist},
		{"ArrowDown", false, false, CmdNone},
		{"z", true, false, CmdUndo},
		{"Z", false, true, CmdUndo},
		{"z", false, false, CmdNone},
		{"ArrowRight", true, false, CmdNone},
		{"", false, false, CmdNone},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, CommandForKey(tt.key, tt.ctrl, tt.meta), "%s ctrl=%v meta=%v", tt.key, tt.ctrl, tt.meta)
	}
}

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand("Undo")
	require.NoError(t, err)
	assert.Equal(t, CmdUndo, c)

	c, err = ParseCommand("wishlist")
	require.NoError(t, err)
	assert.Equal(t, CmdWishlist, c)

	_, err = ParseCommand("refresh")
	assert.Error(t, err)
}
