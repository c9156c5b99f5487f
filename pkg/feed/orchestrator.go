package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/shelfscope/pkg/domain"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source

// Source is the set of upstream calls backing composite feed sections
type Source interface {
	Featured(ctx context.Context, limit int) ([]domain.RecommendationItem, error)
	ForUser(ctx context.Context, userID string, n int) ([]domain.RecommendationItem, error)
	Categories(ctx context.Context) ([]domain.CategorySummary, error)
	BecauseBorrowed(ctx context.Context, limit int) ([]domain.BorrowedGroup, error)
	DiscoveryQueue(ctx context.Context, limit int) ([]domain.RecommendationItem, error)
	KnownAuthors(ctx context.Context, limit int) ([]domain.AuthorHighlight, error)
	Metrics(ctx context.Context) (*domain.ModelMetrics, error)
}

// SourceSpec names one upstream call of the composite feed and its parameters
type SourceSpec struct {
	Kind    domain.SectionKind
	Limit   int           // page size, ignored by sources without paging
	Timeout time.Duration // per-source timeout, orchestrator default if zero
	UserID  string        // featured only, personal recommendations of the user instead of the global list
}

// Options for the orchestrator
type Options struct {
	Timeout time.Duration // default per-source timeout
}

// Orchestrator fans out to independent sources and joins them into a composite feed
type Orchestrator struct {
	src     Source
	timeout time.Duration
}

// NewOrchestrator makes an orchestrator on top of the given source
func NewOrchestrator(src Source, opts Options) *Orchestrator {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Orchestrator{src: src, timeout: opts.Timeout}
}

// FetchComposite calls all sources concurrently and waits for every one of them to settle.
// A failed source turns into a failed section and never affects its siblings, so the result
// is always a complete feed, even if every section failed.
func (o *Orchestrator) FetchComposite(ctx context.Context, specs []SourceSpec) domain.CompositeFeed {
	specs = uniqueSpecs(specs)
	sections := make([]domain.FeedSection, len(specs))

	var g errgroup.Group // no context, one failed source must not cancel the rest
	for i, spec := range specs {
		g.Go(func() error {
			sections[i] = o.fetchSection(ctx, spec)
			return nil
		})
	}
	_ = g.Wait() // never fails, errors are part of sections

	res := domain.CompositeFeed{
		Sections:  make(map[domain.SectionKind]domain.FeedSection, len(sections)),
		FetchedAt: time.Now(),
	}
	failed := 0
	for _, s := range sections {
		res.Sections[s.Kind] = s
		if s.Status == domain.StatusFailed {
			failed++
		}
	}
	res.Ready = true

	if failed > 0 {
		lgr.Printf("[WARN] composite feed ready with %d/%d failed sections %v", failed, len(sections), res.Failed())
	} else {
		lgr.Printf("[DEBUG] composite feed ready, %d sections", len(sections))
	}
	return res
}

// fetchSection calls a single source under its own timeout. Panics are turned into a failed section.
func (o *Orchestrator) fetchSection(ctx context.Context, spec SourceSpec) (section domain.FeedSection) {
	section = domain.FeedSection{Kind: spec.Kind, Status: domain.StatusPending}
	st := time.Now()

	defer func() {
		if r := recover(); r != nil {
			section = failedSection(spec.Kind, fmt.Errorf("source panic: %v", r))
			lgr.Printf("[ERROR] section %s panicked: %v", spec.Kind, r)
		}
	}()

	timeout := spec.Timeout
	if timeout == 0 {
		timeout = o.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	switch spec.Kind {
	case domain.SectionFeatured:
		if spec.UserID != "" {
			section.Items, err = o.src.ForUser(ctx, spec.UserID, spec.Limit)
			break
		}
		section.Items, err = o.src.Featured(ctx, spec.Limit)
	case domain.SectionDiscoveryQueue:
		section.Items, err = o.src.DiscoveryQueue(ctx, spec.Limit)
	case domain.SectionCategories:
		section.Categories, err = o.src.Categories(ctx)
	case domain.SectionBecauseBorrowed:
		section.Borrowed, err = o.src.BecauseBorrowed(ctx, spec.Limit)
	case domain.SectionKnownAuthors:
		section.Authors, err = o.src.KnownAuthors(ctx, spec.Limit)
	case domain.SectionMetrics:
		section.Metrics, err = o.src.Metrics(ctx)
	default:
		err = fmt.Errorf("unknown section kind %q", spec.Kind)
	}

	if err != nil {
		lgr.Printf("[WARN] section %s failed after %v: %v", spec.Kind, time.Since(st), err)
		return failedSection(spec.Kind, err)
	}

	section.Status = domain.StatusLoaded
	if section.PayloadSize() == 0 {
		section.Status = domain.StatusEmpty
	}
	lgr.Printf("[DEBUG] section %s %s with %d entries in %v", spec.Kind, section.Status, section.PayloadSize(), time.Since(st))
	return section
}

func failedSection(kind domain.SectionKind, err error) domain.FeedSection {
	return domain.FeedSection{
		Kind:   kind,
		Status: domain.StatusFailed,
		Reason: err.Error(),
		Err:    fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err),
	}
}

// uniqueSpecs drops repeated kinds, the first spec of a kind wins
func uniqueSpecs(specs []SourceSpec) []SourceSpec {
	seen := make(map[domain.SectionKind]bool, len(specs))
	res := make([]SourceSpec, 0, len(specs))
	for _, s := range specs {
		if seen[s.Kind] {
			lgr.Printf("[WARN] duplicate section %s ignored", s.Kind)
			continue
		}
		seen[s.Kind] = true
		res = append(res, s)
	}
	return res
}

// Limits are page sizes of the standard sections, zero means service default
type Limits struct {
	Featured        int
	BecauseBorrowed int
	DiscoveryQueue  int
	KnownAuthors    int
	Timeout         time.Duration
}

// DefaultSpecs returns specs of the six standard sections of the recommendations page
func DefaultSpecs(l Limits) []SourceSpec {
	orDefault := func(v, def int) int {
		if v <= 0 {
			return def
		}
		return v
	}
	return []SourceSpec{
		{Kind: domain.SectionFeatured, Limit: orDefault(l.Featured, 10), Timeout: l.Timeout},
		{Kind: domain.SectionCategories, Timeout: l.Timeout},
		{Kind: domain.SectionBecauseBorrowed, Limit: orDefault(l.BecauseBorrowed, 3), Timeout: l.Timeout},
		{Kind: domain.SectionDiscoveryQueue, Limit: orDefault(l.DiscoveryQueue, 12), Timeout: l.Timeout},
		{Kind: domain.SectionKnownAuthors, Limit: orDefault(l.KnownAuthors, 6), Timeout: l.Timeout},
		{Kind: domain.SectionMetrics, Timeout: l.Timeout},
	}
}

// ForUser returns a copy of specs with the featured section backed by personal recommendations of the user
func ForUser(specs []SourceSpec, userID string) []SourceSpec {
	res := make([]SourceSpec, len(specs))
	copy(res, specs)
	if userID == "" {
		return res
	}
	for i := range res {
		if res[i].Kind == domain.SectionFeatured {
			res[i].UserID = userID
		}
	}
	return res
}
