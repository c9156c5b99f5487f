// Package reporter sends user interactions upstream in fire-and-forget mode.
// Reports are never retried, never queued and never surfaced to the caller,
// the outcome of every report goes to the log and to an optional sink.
package reporter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/shelfscope/pkg/domain"
)

//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender
//go:generate moq -out mocks/sink.go -pkg mocks -skip-ensure -fmt goimports . Sink

// Sender delivers a single interaction to the recommendation service
type Sender interface {
	ReportInteraction(ctx context.Context, in domain.Interaction) error
}

// Sink receives results of all reports, e.g. a local journal
type Sink interface {
	Record(ctx context.Context, res domain.InteractionResult) error
}

// Options for reporter
type Options struct {
	Timeout     time.Duration   // per-report timeout
	BaseContext context.Context // process lifetime, cancels in-flight reports on shutdown
	Sink        Sink
	Logger      lgr.L
}

// Reporter sends interactions in detached goroutines
type Reporter struct {
	sender  Sender
	sink    Sink
	log     lgr.L
	timeout time.Duration
	baseCtx context.Context

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New makes a reporter for the sender
func New(sender Sender, opts Options) *Reporter {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.BaseContext == nil {
		opts.BaseContext = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = lgr.Default()
	}
	return &Reporter{
		sender:  sender,
		sink:    opts.Sink,
		log:     opts.Logger,
		timeout: opts.Timeout,
		baseCtx: opts.BaseContext,
	}
}

// Report sends the interaction in background and returns immediately.
// Reports made after Close are dropped.
func (r *Reporter) Report(itemID string, typ domain.InteractionType, metadata map[string]any) {
	if itemID == "" {
		r.log.Logf("[WARN] drop %s interaction without item id", typ)
		return
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.log.Logf("[DEBUG] reporter closed, drop %s for %s", typ, itemID)
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	in := domain.Interaction{ItemID: itemID, Type: typ, Metadata: copyMetadata(metadata)}
	go func() {
		defer r.wg.Done()
		r.send(in)
	}()
}

// Close stops accepting new reports. Reports already in flight complete on their own,
// their results only reach the log and the sink.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Wait blocks until all in-flight reports are done
func (r *Reporter) Wait() {
	r.wg.Wait()
}

// send makes a single attempt, the result is discarded after logging
func (r *Reporter) send(in domain.Interaction) {
	ctx, cancel := context.WithTimeout(r.baseCtx, r.timeout)
	defer cancel()

	st := time.Now()
	res := domain.InteractionResult{Interaction: in, At: st}
	if err := r.sender.ReportInteraction(ctx, in); err != nil {
		res.Err = fmt.Errorf("%w: %w", domain.ErrReportFailed, err)
	}
	res.Duration = time.Since(st)

	if res.Err != nil {
		r.log.Logf("[WARN] failed to report %s for %s: %v", in.Type, in.ItemID, res.Err)
	} else {
		r.log.Logf("[DEBUG] reported %s for %s in %v", in.Type, in.ItemID, res.Duration)
	}

	if r.sink == nil {
		return
	}
	sinkCtx, sinkCancel := context.WithTimeout(r.baseCtx, r.timeout) // send may have used up ctx
	defer sinkCancel()
	if err := r.sink.Record(sinkCtx, res); err != nil {
		r.log.Logf("[WARN] failed to record %s result for %s: %v", in.Type, in.ItemID, err)
	}
}

func copyMetadata(m map[string]any) map[string]any {
	res := make(map[string]any, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}
