package reporter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/shelfscope/pkg/domain"
	"github.com/umputun/shelfscope/pkg/reporter/mocks"
)

func TestReporter_Report(t *testing.T) {
	t.Run("sends and records success", func(t *testing.T) {
		sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
			return nil
		}}
		sink := &mocks.SinkMock{RecordFunc: func(ctx context.Context, res domain.InteractionResult) error {
			return nil
		}}
		r := New(sender, Options{Sink: sink, Logger: lgr.NoOp})
		r.Report("b1", domain.InteractionLike, map[string]any{"source": "discovery_queue"})
		r.Wait()

		require.Len(t, sender.ReportInteractionCalls(), 1)
		in := sender.ReportInteractionCalls()[0].In
		assert.Equal(t, "b1", in.ItemID)
		assert.Equal(t, domain.InteractionLike, in.Type)
		assert.Equal(t, map[string]any{"source": "discovery_queue"}, in.Metadata)

		require.Len(t, sink.RecordCalls(), 1)
		res := sink.RecordCalls()[0].Res
		assert.NoError(t, res.Err)
		assert.Equal(t, "b1", res.ItemID)
		assert.False(t, res.At.IsZero())
	})

	t.Run("failure is recorded, not retried", func(t *testing.T) {
		sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
			return errors.New("503")
		}}
		sink := &mocks.SinkMock{RecordFunc: func(ctx context.Context, res domain.InteractionResult) error {
			return errors.New("disk full") // sink errors are only logged
		}}
		r := New(sender, Options{Sink: sink, Logger: lgr.NoOp})
		r.Report("b2", domain.InteractionDislike, nil)
		r.Wait()

		assert.Len(t, sender.ReportInteractionCalls(), 1)
		require.Len(t, sink.RecordCalls(), 1)
		res := sink.RecordCalls()[0].Res
		assert.ErrorIs(t, res.Err, domain.ErrReportFailed)
		assert.Contains(t, res.Err.Error(), "503")
		assert.Equal(t, map[string]any{}, res.Metadata)
	})

	t.Run("empty id dropped", func(t *testing.T) {
		sender := &mocks.SenderMock{}
		r := New(sender, Options{Logger: lgr.NoOp})
		r.Report("", domain.InteractionClick, nil)
		r.Wait()
		assert.Empty(t, sender.ReportInteractionCalls())
	})

	t.Run("metadata copied", func(t *testing.T) {
		sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
			return nil
		}}
		r := New(sender, Options{Logger: lgr.NoOp})
		meta := map[string]any{"source": "featured"}
		r.Report("b3", domain.InteractionClick, meta)
		meta["source"] = "changed"
		r.Wait()
		assert.Equal(t, "featured", sender.ReportInteractionCalls()[0].In.Metadata["source"])
	})
}

func TestReporter_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
		<-release
		return nil
	}}
	r := New(sender, Options{Logger: lgr.NoOp})

	st := time.Now()
	for i := 0; i < 10; i++ {
		r.Report("b", domain.InteractionView, nil)
	}
	assert.Less(t, time.Since(st), 50*time.Millisecond)
	close(release)
	r.Wait()
	assert.Len(t, sender.ReportInteractionCalls(), 10)
}

func TestReporter_Timeout(t *testing.T) {
	sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	var mu sync.Mutex
	var results []domain.InteractionResult
	sink := &mocks.SinkMock{RecordFunc: func(ctx context.Context, res domain.InteractionResult) error {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, res)
		return nil
	}}
	r := New(sender, Options{Timeout: 10 * time.Millisecond, Sink: sink, Logger: lgr.NoOp})
	r.Report("b1", domain.InteractionWishlist, nil)
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
}

func TestReporter_Close(t *testing.T) {
	release := make(chan struct{})
	sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
		<-release
		return nil
	}}
	r := New(sender, Options{Logger: lgr.NoOp})
	r.Report("before", domain.InteractionLike, nil)
	r.Close()
	r.Report("after", domain.InteractionLike, nil)

	close(release) // in-flight report completes after close
	r.Wait()
	require.Len(t, sender.ReportInteractionCalls(), 1)
	assert.Equal(t, "before", sender.ReportInteractionCalls()[0].In.ItemID)
}

func TestReporter_BaseContextCancelsInFlight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sender := &mocks.SenderMock{ReportInteractionFunc: func(ctx context.Context, in domain.Interaction) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	r := New(sender, Options{BaseContext: ctx, Timeout: time.Minute, Logger: lgr.NoOp})
	r.Report("b1", domain.InteractionBorrow, nil)
	cancel()
	r.Wait()
	assert.Len(t, sender.ReportInteractionCalls(), 1)
}
