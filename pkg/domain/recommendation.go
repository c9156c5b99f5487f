package domain

// RecommendationItem represents a single recommended book as returned by the upstream service
type RecommendationItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres"`
	Rating      float64  `json:"rating"`       // 0-5
	ReviewCount int      `json:"review_count"` // never negative
	Available   bool     `json:"available"`
	MatchScore  *float64 `json:"match_score,omitempty"` // 0-1, if the model provided it
	Reason      string   `json:"reason,omitempty"`
	OnWishlist  bool     `json:"on_wishlist"` // ui-local, may be toggled optimistically
}

// CategorySummary is a genre bucket with sample covers
type CategorySummary struct {
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	SampleCovers []string `json:"sample_covers"`
}

// BorrowedGroup holds recommendations derived from one previously borrowed book
type BorrowedGroup struct {
	Source RecommendationItem   `json:"source"`
	Items  []RecommendationItem `json:"items"`
}

// AuthorHighlight is an author the user already knows with their latest book
type AuthorHighlight struct {
	Name   string             `json:"name"`
	Latest RecommendationItem `json:"latest"`
}

// ModelMetrics is an opaque metrics record of the upstream model.
// Numeric fields go to Values, everything else is kept as text in Labels.
type ModelMetrics struct {
	Values map[string]float64 `json:"values"`
	Labels map[string]string  `json:"labels"`
}

// IsEmpty returns true if metrics carry no fields at all
func (m *ModelMetrics) IsEmpty() bool {
	return m == nil || (len(m.Values) == 0 && len(m.Labels) == 0)
}
