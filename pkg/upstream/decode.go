package upstream

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/umputun/shelfscope/pkg/domain"
)

// the service is not consistent about field names, decoding goes through generic maps
// and falls back to zero values for anything missing or malformed

// listOf extracts a list from raw json, either a bare array or an object wrapping one
func listOf(raw json.RawMessage) []any {
	if len(raw) == 0 {
		return []any{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return []any{}
	}
	switch vv := v.(type) {
	case []any:
		return vv
	case map[string]any:
		if l, ok := firstOf(vv, "items", "data", "results", "recommendations").([]any); ok {
			return l
		}
	}
	return []any{}
}

func (c *Client) items(entries []any) []domain.RecommendationItem {
	res := make([]domain.RecommendationItem, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		item := c.item(m)
		if item.ID == "" {
			c.warnf("skip recommendation without id, title %q", item.Title)
			continue
		}
		res = append(res, item)
	}
	return res
}

func (c *Client) item(m map[string]any) domain.RecommendationItem {
	res := domain.RecommendationItem{
		ID:          stringOf(m, "_id", "id", "book_id"),
		Title:       c.text(m, "title"),
		Author:      c.text(m, "author", "authors"),
		CoverURL:    stringOf(m, "coverImage", "cover_image", "image_url", "small_image_url"),
		Description: c.text(m, "description"),
		Genres:      stringsOf(m, "genres", "genre"),
		Rating:      clamp(floatOf(m, "averageRating", "average_rating", "rating"), 0, 5),
		ReviewCount: max(intOf(m, "reviewCount", "total_reviews", "ratings_count", "reviews_count"), 0),
		Available:   availableOf(m),
		Reason:      c.text(m, "recommendationReason", "recommendation_reason", "reason"),
		OnWishlist:  boolOf(m, "onWishlist", "on_wishlist"),
	}
	if v, ok := numberOf(firstOf(m, "matchScore", "match_score", "score")); ok {
		score := clamp(v, 0, 1)
		res.MatchScore = &score
	}
	return res
}

// text returns sanitized free text, markup is stripped and entities are decoded back
func (c *Client) text(m map[string]any, keys ...string) string {
	return c.clean(stringOf(m, keys...))
}

func (c *Client) clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}

// firstOf returns the first non-nil value for the keys
func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringOf(m map[string]any, keys ...string) string {
	switch v := firstOf(m, keys...).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any: // e.g. list of authors
		parts := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func stringsOf(m map[string]any, keys ...string) []string {
	res := []string{}
	switch v := firstOf(m, keys...).(type) {
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				res = append(res, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				res = append(res, s)
			}
		}
	}
	return res
}

// numberOf accepts json numbers and numeric strings, NaN and infinities are rejected as they can't be encoded back
func numberOf(v any) (float64, bool) {
	var f float64
	switch vv := v.(type) {
	case float64:
		f = vv
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(vv), ",", ""), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func floatOf(m map[string]any, keys ...string) float64 {
	v, _ := numberOf(firstOf(m, keys...))
	return v
}

func intOf(m map[string]any, keys ...string) int {
	return int(floatOf(m, keys...))
}

func boolOf(m map[string]any, keys ...string) bool {
	b, _ := firstOf(m, keys...).(bool)
	return b
}

// availableOf follows the service convention: explicit flag, then copies count, then available by default
func availableOf(m map[string]any) bool {
	if b, ok := m["available"].(bool); ok {
		return b
	}
	if n, ok := m["available_copies"].(float64); ok {
		return n > 0
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
