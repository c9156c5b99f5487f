package domain

import (
	"errors"
	"time"
)

// SectionKind identifies one upstream source of the composite feed
type SectionKind string

// enum of section kinds
const (
	SectionFeatured        SectionKind = "featured"
	SectionCategories      SectionKind = "categories"
	SectionBecauseBorrowed SectionKind = "because-you-borrowed"
	SectionDiscoveryQueue  SectionKind = "discovery-queue"
	SectionKnownAuthors    SectionKind = "known-authors"
	SectionMetrics         SectionKind = "metrics"
)

// AllSectionKinds lists every known section kind in display order
var AllSectionKinds = []SectionKind{
	SectionFeatured, SectionCategories, SectionBecauseBorrowed,
	SectionDiscoveryQueue, SectionKnownAuthors, SectionMetrics,
}

// SectionStatus is the load status of a feed section
type SectionStatus string

// enum of section statuses
const (
	StatusPending SectionStatus = "pending"
	StatusLoaded  SectionStatus = "loaded"
	StatusEmpty   SectionStatus = "empty"
	StatusFailed  SectionStatus = "failed"
)

// FeedSection is one source's contribution to the composite feed.
// Only the payload field matching Kind is populated.
type FeedSection struct {
	Kind   SectionKind   `json:"kind"`
	Status SectionStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`

	Items      []RecommendationItem `json:"items,omitempty"`
	Categories []CategorySummary    `json:"categories,omitempty"`
	Borrowed   []BorrowedGroup      `json:"borrowed,omitempty"`
	Authors    []AuthorHighlight    `json:"authors,omitempty"`
	Metrics    *ModelMetrics        `json:"metrics,omitempty"`

	Err error `json:"-"`
}

// PayloadSize returns number of payload entries for the section kind
func (s FeedSection) PayloadSize() int {
	switch s.Kind {
	case SectionFeatured, SectionDiscoveryQueue:
		return len(s.Items)
	case SectionCategories:
		return len(s.Categories)
	case SectionBecauseBorrowed:
		return len(s.Borrowed)
	case SectionKnownAuthors:
		return len(s.Authors)
	case SectionMetrics:
		if s.Metrics.IsEmpty() {
			return 0
		}
		return len(s.Metrics.Values) + len(s.Metrics.Labels)
	}
	return 0
}

// CompositeFeed is the merged result of all independently fetched sections.
// It is delivered whole: Ready is set only after every section has resolved.
type CompositeFeed struct {
	Sections  map[SectionKind]FeedSection `json:"sections"`
	FetchedAt time.Time                   `json:"fetched_at"`
	Ready     bool                        `json:"ready"`
}

// Section returns section by kind, pending if the kind was never requested
func (f CompositeFeed) Section(kind SectionKind) FeedSection {
	if s, ok := f.Sections[kind]; ok {
		return s
	}
	return FeedSection{Kind: kind, Status: StatusPending}
}

// Failed returns kinds of all failed sections in display order
func (f CompositeFeed) Failed() []SectionKind {
	res := []SectionKind{}
	for _, k := range AllSectionKinds {
		if s, ok := f.Sections[k]; ok && s.Status == StatusFailed {
			res = append(res, k)
		}
	}
	return res
}

// AuthExpired returns true if any section failed because upstream rejected the token
func (f CompositeFeed) AuthExpired() bool {
	for _, s := range f.Sections {
		if s.Status == StatusFailed && errors.Is(s.Err, ErrAuthExpired) {
			return true
		}
	}
	return false
}

// SetWishlist flips the ui-local wishlist flag of every copy of the item in the feed.
// Returns the number of updated entries.
func (f *CompositeFeed) SetWishlist(itemID string, on bool) int {
	updated := 0
	mark := func(items []RecommendationItem) {
		for i := range items {
			if items[i].ID == itemID {
				items[i].OnWishlist = on
				updated++
			}
		}
	}
	for kind, s := range f.Sections {
		mark(s.Items)
		for i := range s.Borrowed {
			if s.Borrowed[i].Source.ID == itemID {
				s.Borrowed[i].Source.OnWishlist = on
				updated++
			}
			mark(s.Borrowed[i].Items)
		}
		for i := range s.Authors {
			if s.Authors[i].Latest.ID == itemID {
				s.Authors[i].Latest.OnWishlist = on
				updated++
			}
		}
		f.Sections[kind] = s
	}
	return updated
}

// Clone makes a copy of the feed deep enough for concurrent readers,
// item slices are copied so later wishlist toggles don't leak into the copy
func (f CompositeFeed) Clone() CompositeFeed {
	res := CompositeFeed{FetchedAt: f.FetchedAt, Ready: f.Ready, Sections: make(map[SectionKind]FeedSection, len(f.Sections))}
	for k, s := range f.Sections {
		s.Items = append([]RecommendationItem(nil), s.Items...)
		if s.Borrowed != nil {
			groups := make([]BorrowedGroup, len(s.Borrowed))
			for i, g := range s.Borrowed {
				groups[i] = BorrowedGroup{Source: g.Source, Items: append([]RecommendationItem(nil), g.Items...)}
			}
			s.Borrowed = groups
		}
		s.Authors = append([]AuthorHighlight(nil), s.Authors...)
		res.Sections[k] = s
	}
	return res
}
