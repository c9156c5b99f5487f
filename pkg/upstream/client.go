// Package upstream implements the REST client of the recommendation service.
// Every method is a single request with its own timeout, there are no retries.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/shelfscope/pkg/domain"
)

const maxBodySize = 4 * 1024 * 1024

// Config for the upstream client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.Code)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// Client talks to the recommendation service. Zero token means anonymous calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	userAgent  string
	token      string
	policy     *bluemonday.Policy

	// OnAuthExpired is called on every 401 response, session handling is up to the caller
	OnAuthExpired func()
}

// New makes a client for the given config
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Shelfscope/1.0"
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		userAgent:  cfg.UserAgent,
		policy:     bluemonday.StrictPolicy(),
	}
}

// WithToken returns a copy of the client sending the given bearer token
func (c *Client) WithToken(token string) *Client {
	res := *c
	res.token = token
	return &res
}

// Featured returns the featured recommendation list
func (c *Client) Featured(ctx context.Context, limit int) ([]domain.RecommendationItem, error) {
	return c.getItems(ctx, "/recommendations/featured", limitParam("limit", limit))
}

// DiscoveryQueue returns a fresh ordered list of items for the discovery queue
func (c *Client) DiscoveryQueue(ctx context.Context, limit int) ([]domain.RecommendationItem, error) {
	return c.getItems(ctx, "/recommendations/discovery-queue", limitParam("limit", limit))
}

// ForUser returns personal recommendations for the user
func (c *Client) ForUser(ctx context.Context, userID string, n int) ([]domain.RecommendationItem, error) {
	return c.getItems(ctx, "/recommendations/user/"+url.PathEscape(userID), limitParam("n", n))
}

// Similar returns items similar to the given one
func (c *Client) Similar(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error) {
	return c.getItems(ctx, "/recommendations/similar/"+url.PathEscape(itemID), limitParam("limit", limit))
}

// Categories returns genre buckets with sample covers
func (c *Client) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/recommendations/categories", nil, &raw); err != nil {
		return nil, err
	}
	entries := listOf(raw)
	res := make([]domain.CategorySummary, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		res = append(res, domain.CategorySummary{
			Name:         c.text(m, "name", "genre"),
			Count:        intOf(m, "count", "total"),
			SampleCovers: stringsOf(m, "sampleCovers", "sample_covers", "covers"),
		})
	}
	return res, nil
}

// BecauseBorrowed returns recommendation groups derived from recently borrowed books
func (c *Client) BecauseBorrowed(ctx context.Context, limit int) ([]domain.BorrowedGroup, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/recommendations/because-borrowed", limitParam("limit", limit), &raw); err != nil {
		return nil, err
	}
	entries := listOf(raw)
	res := make([]domain.BorrowedGroup, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		grp := domain.BorrowedGroup{Items: []domain.RecommendationItem{}}
		if src, ok := firstOf(m, "sourceBook", "source_book", "source").(map[string]any); ok {
			grp.Source = c.item(src)
		}
		if recs, ok := firstOf(m, "recommendations", "items", "books").([]any); ok {
			grp.Items = c.items(recs)
		}
		res = append(res, grp)
	}
	return res, nil
}

// KnownAuthors returns authors the user already read with their latest book
func (c *Client) KnownAuthors(ctx context.Context, limit int) ([]domain.AuthorHighlight, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/recommendations/known-authors", limitParam("limit", limit), &raw); err != nil {
		return nil, err
	}
	entries := listOf(raw)
	res := make([]domain.AuthorHighlight, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		ah := domain.AuthorHighlight{Name: c.text(m, "name", "author")}
		if latest, ok := firstOf(m, "latestBook", "latest_book", "latest").(map[string]any); ok {
			ah.Latest = c.item(latest)
			if ah.Latest.Author == "" {
				ah.Latest.Author = ah.Name
			}
		}
		res = append(res, ah)
	}
	return res, nil
}

// Metrics returns the model metrics record
func (c *Client) Metrics(ctx context.Context) (*domain.ModelMetrics, error) {
	var raw map[string]any
	if err := c.get(ctx, "/recommendations/metrics", nil, &raw); err != nil {
		return nil, err
	}
	res := &domain.ModelMetrics{Values: map[string]float64{}, Labels: map[string]string{}}
	for k, v := range raw {
		switch vv := v.(type) {
		case float64:
			res.Values[k] = vv
		case nil:
		case string:
			res.Labels[k] = c.clean(vv)
		default:
			res.Labels[k] = fmt.Sprint(vv)
		}
	}
	return res, nil
}

// Health returns status reported by the recommendation service
func (c *Client) Health(ctx context.Context) (string, error) {
	var raw map[string]any
	if err := c.get(ctx, "/recommendations/health", nil, &raw); err != nil {
		return "", err
	}
	if status := stringOf(raw, "status"); status != "" {
		return status, nil
	}
	return "unknown", nil
}

// ReportInteraction posts a single interaction event, the response body is ignored
func (c *Client) ReportInteraction(ctx context.Context, in domain.Interaction) error {
	if in.Metadata == nil {
		in.Metadata = map[string]any{}
	}
	if err := c.send(ctx, http.MethodPost, "/recommendations/interaction", nil, in, nil); err != nil {
		return fmt.Errorf("report %s for %s: %w", in.Type, in.ItemID, err)
	}
	return nil
}

func (c *Client) getItems(ctx context.Context, path string, params url.Values) ([]domain.RecommendationItem, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, err
	}
	return c.items(listOf(raw)), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	return c.send(ctx, http.MethodGet, path, params, nil, dest)
}

// send makes a single request and decodes json response into dest if it's not nil
func (c *Client) send(ctx context.Context, method, path string, params url.Values, body, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("make request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.OnAuthExpired != nil {
			c.OnAuthExpired()
		}
		return fmt.Errorf("request %s: %w", path, domain.ErrAuthExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s: %w", path, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))})
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil // empty body is treated as empty payload
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}

func limitParam(name string, v int) url.Values {
	if v <= 0 {
		return nil
	}
	return url.Values{name: []string{strconv.Itoa(v)}}
}

func (c *Client) warnf(format string, args ...any) {
	lgr.Printf("[WARN] "+format, args...)
}
