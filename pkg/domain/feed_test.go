package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeed() CompositeFeed {
	book := func(id string) RecommendationItem { return RecommendationItem{ID: id} }
	return CompositeFeed{Ready: true, Sections: map[SectionKind]FeedSection{
		SectionFeatured: {Kind: SectionFeatured, Status: StatusLoaded, Items: []RecommendationItem{book("1"), book("2")}},
		SectionBecauseBorrowed: {Kind: SectionBecauseBorrowed, Status: StatusLoaded,
			Borrowed: []BorrowedGroup{{Source: book("s"), Items: []RecommendationItem{book("2"), book("3")}}}},
		SectionKnownAuthors: {Kind: SectionKnownAuthors, Status: StatusLoaded,
			Authors: []AuthorHighlight{{Name: "X", Latest: book("4")}}},
		SectionMetrics: {Kind: SectionMetrics, Status: StatusFailed, Reason: "503",
			Err: fmt.Errorf("%w: 503", ErrSourceUnavailable)},
		SectionCategories: {Kind: SectionCategories, Status: StatusFailed,
			Err: fmt.Errorf("%w: %w", ErrSourceUnavailable, ErrAuthExpired)},
	}}
}

func TestCompositeFeed_Section(t *testing.T) {
	f := testFeed()
	assert.Equal(t, StatusLoaded, f.Section(SectionFeatured).Status)
	assert.Equal(t, StatusPending, f.Section(SectionDiscoveryQueue).Status)
	assert.Equal(t, SectionDiscoveryQueue, f.Section(SectionDiscoveryQueue).Kind)
	assert.Equal(t, []SectionKind{SectionCategories, SectionMetrics}, f.Failed(), "display order")
	assert.True(t, f.AuthExpired())

	delete(f.Sections, SectionCategories)
	assert.False(t, f.AuthExpired())
}

func TestCompositeFeed_SetWishlist(t *testing.T) {
	f := testFeed()
	clone := f.Clone()

	assert.Equal(t, 2, f.SetWishlist("2", true), "featured and borrowed copies")
	assert.True(t, f.Sections[SectionFeatured].Items[1].OnWishlist)
	assert.True(t, f.Sections[SectionBecauseBorrowed].Borrowed[0].Items[0].OnWishlist)
	assert.Equal(t, 1, f.SetWishlist("s", true))
	assert.True(t, f.Sections[SectionBecauseBorrowed].Borrowed[0].Source.OnWishlist)
	assert.Equal(t, 1, f.SetWishlist("4", true))
	assert.True(t, f.Sections[SectionKnownAuthors].Authors[0].Latest.OnWishlist)
	assert.Equal(t, 0, f.SetWishlist("nope", true))

	// clone is not affected
	assert.False(t, clone.Sections[SectionFeatured].Items[1].OnWishlist)
	assert.False(t, clone.Sections[SectionBecauseBorrowed].Borrowed[0].Items[0].OnWishlist)
	assert.False(t, clone.Sections[SectionKnownAuthors].Authors[0].Latest.OnWishlist)
}

func TestFeedSection_PayloadSize(t *testing.T) {
	assert.Equal(t, 0, FeedSection{Kind: SectionMetrics}.PayloadSize())
	assert.Equal(t, 0, FeedSection{Kind: SectionMetrics, Metrics: &ModelMetrics{}}.PayloadSize())
	assert.Equal(t, 2, FeedSection{Kind: SectionMetrics, Metrics: &ModelMetrics{
		Values: map[string]float64{"recall": 0.1}, Labels: map[string]string{"model": "gcn"}}}.PayloadSize())
	assert.Equal(t, 1, FeedSection{Kind: SectionCategories, Categories: []CategorySummary{{Name: "x"}}}.PayloadSize())
	assert.Equal(t, 0, FeedSection{Kind: "other", Items: []RecommendationItem{{ID: "1"}}}.PayloadSize())
}

func TestParsers(t *testing.T) {
	assert.Equal(t, DirectionUp, ActionWishlist.Direction())
	assert.Equal(t, DirectionRight, ActionLike.Direction())
	assert.Equal(t, DirectionLeft, ActionDislike.Direction())
	assert.Equal(t, DirectionNone, Action("skip").Direction())

	typ, err := ParseInteractionType("wishlist_remove")
	require.NoError(t, err)
	assert.Equal(t, InteractionWishlistRemove, typ)
	_, err = ParseInteractionType("share")
	assert.Error(t, err)
	assert.Equal(t, InteractionDislike, InteractionFor(ActionDislike))

	assert.Equal(t, 3, Stats{Liked: 1, Disliked: 1, Wishlisted: 1}.Total())
}
