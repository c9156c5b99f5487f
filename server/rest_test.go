package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/shelfscope/pkg/discovery"
	"github.com/umputun/shelfscope/pkg/domain"
	"github.com/umputun/shelfscope/pkg/journal"
	"github.com/umputun/shelfscope/pkg/session"
	"github.com/umputun/shelfscope/server/mocks"
)

func sessionMock() *mocks.SessionMock {
	item := domain.RecommendationItem{ID: "q1", Title: "Dune"}
	return &mocks.SessionMock{
		FeedFunc: func() domain.CompositeFeed {
			return domain.CompositeFeed{Ready: true, Sections: map[domain.SectionKind]domain.FeedSection{
				domain.SectionFeatured: {Kind: domain.SectionFeatured, Status: domain.StatusLoaded,
					Items: []domain.RecommendationItem{item}},
			}}
		},
		QueueFunc: func() domain.QueueState {
			return domain.QueueState{Items: []domain.RecommendationItem{item}, Phase: domain.PhasePresenting,
				Current: &item, Remaining: 1}
		},
		ApplyFunc:     func(cmd discovery.Command) bool { return cmd != discovery.CmdUndo },
		HandleKeyFunc: func(key string, ctrl, meta bool) (discovery.Command, bool) { return discovery.CmdLike, true },
		RefreshFunc:   func(ctx context.Context) error { return nil },
		ReportInteractionFunc: func(itemID string, typ domain.InteractionType, metadata map[string]any) {
		},
		ToggleWishlistFunc: func(itemID string) (bool, error) { return true, nil },
		SimilarFunc: func(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error) {
			return []domain.RecommendationItem{{ID: "s1", Title: "Children of Dune"}}, nil
		},
	}
}

func TestServer_createSessionHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		sessions := &fakeSessions{sess: sessionMock()}
		srv := New(testConfig(), sessions, nil, nil, "test", false)

		w := do(t, srv, "POST", "/api/v1/sessions", "tok", "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			ID    string               `json:"id"`
			Feed  domain.CompositeFeed `json:"feed"`
			Queue domain.QueueState    `json:"queue"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "sid", resp.ID)
		assert.True(t, resp.Feed.Ready)
		assert.Equal(t, "q1", resp.Queue.Current.ID)
		assert.Equal(t, []string{"tok"}, sessions.tokens)
		assert.Equal(t, []string{""}, sessions.users)
	})

	t.Run("created for user", func(t *testing.T) {
		sessions := &fakeSessions{sess: sessionMock()}
		srv := New(testConfig(), sessions, nil, nil, "test", false)

		w := do(t, srv, "POST", "/api/v1/sessions", "tok", `{"user_id":" reader-7 "}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, []string{"reader-7"}, sessions.users)
	})

	t.Run("invalid body", func(t *testing.T) {
		sessions := &fakeSessions{sess: sessionMock()}
		srv := New(testConfig(), sessions, nil, nil, "test", false)

		w := do(t, srv, "POST", "/api/v1/sessions", "tok", `{bad`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, sessions.users, "no session created")
	})

	t.Run("token rejected", func(t *testing.T) {
		sessions := &fakeSessions{createErr: fmt.Errorf("create session: %w", domain.ErrAuthExpired)}
		srv := New(testConfig(), sessions, nil, nil, "test", false)

		w := do(t, srv, "POST", "/api/v1/sessions", "stale", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "auth expired")
	})
}

func TestServer_closeSessionHandler(t *testing.T) {
	sessions := &fakeSessions{sess: sessionMock()}
	srv := New(testConfig(), sessions, nil, nil, "test", false)

	w := do(t, srv, "DELETE", "/api/v1/sessions/sid", "tok", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"sid"}, sessions.closed)

	sessions.getErr = session.ErrForbidden
	w = do(t, srv, "DELETE", "/api/v1/sessions/sid", "other", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServer_sessionErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", session.ErrNotFound, http.StatusNotFound},
		{"forbidden", session.ErrForbidden, http.StatusForbidden},
		{"auth expired", fmt.Errorf("get: %w", domain.ErrAuthExpired), http.StatusUnauthorized},
		{"unknown item", session.ErrUnknownItem, http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(testConfig(), &fakeSessions{getErr: tt.err}, nil, nil, "test", false)
			for _, path := range []string{"/api/v1/sessions/sid/feed", "/api/v1/sessions/sid/queue"} {
				w := do(t, srv, "GET", path, "tok", "")
				assert.Equal(t, tt.code, w.Code, path)
				var resp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp["error"])
			}
		})
	}
}

func TestServer_feedAndQueueHandlers(t *testing.T) {
	sess := sessionMock()
	srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

	w := do(t, srv, "GET", "/api/v1/sessions/sid/feed", "tok", "")
	require.Equal(t, http.StatusOK, w.Code)
	var feed domain.CompositeFeed
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Equal(t, domain.StatusLoaded, feed.Section(domain.SectionFeatured).Status)

	w = do(t, srv, "GET", "/api/v1/sessions/sid/queue", "tok", "")
	require.Equal(t, http.StatusOK, w.Code)
	var q domain.QueueState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, domain.PhasePresenting, q.Phase)
	assert.Equal(t, 1, q.Remaining)

	assert.Len(t, sess.FeedCalls(), 1)
	assert.Len(t, sess.QueueCalls(), 1)
}

func TestServer_decideHandler(t *testing.T) {
	tests := []struct {
		action   string
		code     int
		cmd      discovery.Command
		accepted bool
	}{
		{"like", http.StatusOK, discovery.CmdLike, true},
		{"DISLIKE", http.StatusOK, discovery.CmdDislike, true},
		{"wishlist", http.StatusOK, discovery.CmdWishlist, true},
		{"undo", http.StatusOK, discovery.CmdUndo, false},
		{"skip", http.StatusBadRequest, discovery.CmdNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			sess := sessionMock()
			srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

			w := do(t, srv, "POST", "/api/v1/sessions/sid/queue/"+tt.action, "tok", "")
			require.Equal(t, tt.code, w.Code)
			if tt.code != http.StatusOK {
				assert.Empty(t, sess.ApplyCalls())
				return
			}

			var resp struct {
				Command  discovery.Command `json:"command"`
				Accepted bool              `json:"accepted"`
				Queue    domain.QueueState `json:"queue"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.cmd, resp.Command)
			assert.Equal(t, tt.accepted, resp.Accepted)
			require.Len(t, sess.ApplyCalls(), 1)
			assert.Equal(t, tt.cmd, sess.ApplyCalls()[0].Cmd)
		})
	}
}

func TestServer_keyHandler(t *testing.T) {
	sess := sessionMock()
	srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

	w := do(t, srv, "POST", "/api/v1/sessions/sid/queue/key", "tok", `{"key":"z","ctrl":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sess.HandleKeyCalls(), 1)
	assert.Equal(t, "z", sess.HandleKeyCalls()[0].Key)
	assert.True(t, sess.HandleKeyCalls()[0].Ctrl)
	assert.False(t, sess.HandleKeyCalls()[0].Meta)
	assert.Contains(t, w.Body.String(), `"command":"like"`)
	assert.Empty(t, sess.ApplyCalls(), "key route is not taken as an action")

	w = do(t, srv, "POST", "/api/v1/sessions/sid/queue/key", "tok", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_refreshHandler(t *testing.T) {
	t.Run("refreshed", func(t *testing.T) {
		sess := sessionMock()
		srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)
		w := do(t, srv, "POST", "/api/v1/sessions/sid/queue/refresh", "tok", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, sess.RefreshCalls(), 1)
		assert.Empty(t, sess.ApplyCalls())
	})

	t.Run("upstream failed", func(t *testing.T) {
		sess := sessionMock()
		sess.RefreshFunc = func(ctx context.Context) error {
			return fmt.Errorf("%w: %w", domain.ErrRefreshFailed, errors.New("503"))
		}
		sess.QueueFunc = func() domain.QueueState {
			return domain.QueueState{Phase: domain.PhaseExhausted, Err: "refresh failed: 503"}
		}
		srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

		w := do(t, srv, "POST", "/api/v1/sessions/sid/queue/refresh", "tok", "")
		require.Equal(t, http.StatusBadGateway, w.Code)
		var resp struct {
			Error string            `json:"error"`
			Queue domain.QueueState `json:"queue"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "refresh failed")
		assert.Equal(t, domain.PhaseExhausted, resp.Queue.Phase)
	})

	t.Run("token expired", func(t *testing.T) {
		sess := sessionMock()
		sess.RefreshFunc = func(ctx context.Context) error {
			return fmt.Errorf("%w: %w", domain.ErrRefreshFailed, domain.ErrAuthExpired)
		}
		srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)
		w := do(t, srv, "POST", "/api/v1/sessions/sid/queue/refresh", "tok", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestServer_interactionHandler(t *testing.T) {
	sess := sessionMock()
	srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

	w := do(t, srv, "POST", "/api/v1/sessions/sid/items/b42/interactions", "tok",
		`{"type":"click","metadata":{"source":"featured","position":3}}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"status":"accepted"}`, w.Body.String())

	require.Len(t, sess.ReportInteractionCalls(), 1)
	call := sess.ReportInteractionCalls()[0]
	assert.Equal(t, "b42", call.ItemID)
	assert.Equal(t, domain.InteractionClick, call.Typ)
	assert.Equal(t, "featured", call.Metadata["source"])
	assert.InDelta(t, 3, call.Metadata["position"], 0.001)

	w = do(t, srv, "POST", "/api/v1/sessions/sid/items/b42/interactions", "tok", `{"type":"poke"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, srv, "POST", "/api/v1/sessions/sid/items/b42/interactions", "tok", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, sess.ReportInteractionCalls(), 1)
}

func TestServer_wishlistHandler(t *testing.T) {
	sess := sessionMock()
	srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

	w := do(t, srv, "POST", "/api/v1/sessions/sid/items/b7/wishlist", "tok", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"on_wishlist":true}`, w.Body.String())
	require.Len(t, sess.ToggleWishlistCalls(), 1)
	assert.Equal(t, "b7", sess.ToggleWishlistCalls()[0].ItemID)

	sess.ToggleWishlistFunc = func(itemID string) (bool, error) { return false, session.ErrUnknownItem }
	w = do(t, srv, "POST", "/api/v1/sessions/sid/items/nope/wishlist", "tok", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_similarHandler(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		sess := sessionMock()
		srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)
		w := do(t, srv, "GET", "/api/v1/sessions/sid/items/q1/similar", "tok", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Items []domain.RecommendationItem `json:"items"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []domain.RecommendationItem{{ID: "s1", Title: "Children of Dune"}}, resp.Items)
		require.Len(t, sess.SimilarCalls(), 1)
		assert.Equal(t, "q1", sess.SimilarCalls()[0].ItemID)
		assert.Equal(t, 8, sess.SimilarCalls()[0].Limit)
	})

	t.Run("limits", func(t *testing.T) {
		sess := sessionMock()
		srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)
		w := do(t, srv, "GET", "/api/v1/sessions/sid/items/q1/similar?limit=3", "tok", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, sess.SimilarCalls()[0].Limit)

		for _, v := range []string{"0", "21", "x"} {
			w = do(t, srv, "GET", "/api/v1/sessions/sid/items/q1/similar?limit="+v, "tok", "")
			assert.Equal(t, http.StatusBadRequest, w.Code, v)
		}
		assert.Len(t, sess.SimilarCalls(), 1)
	})

	t.Run("upstream errors", func(t *testing.T) {
		sess := sessionMock()
		srv := New(testConfig(), &fakeSessions{sess: sess}, nil, nil, "test", false)

		sess.SimilarFunc = func(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error) {
			return nil, errors.New("upstream 500")
		}
		w := do(t, srv, "GET", "/api/v1/sessions/sid/items/q1/similar", "tok", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)

		sess.SimilarFunc = func(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error) {
			return nil, fmt.Errorf("similar: %w", domain.ErrAuthExpired)
		}
		w = do(t, srv, "GET", "/api/v1/sessions/sid/items/q1/similar", "tok", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		srv := New(testConfig(), &fakeSessions{sess: sessionMock()}, nil, nil, "test", false)
		w := do(t, srv, "GET", "/api/v1/sessions/missing/items/q1/similar", "tok", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestServer_interactionsHandler(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	jrnl := &mocks.JournalMock{
		RecentFunc: func(ctx context.Context, limit int) ([]journal.Entry, error) {
			return []journal.Entry{{ID: 1, ItemID: "b1", Type: domain.InteractionLike, Status: journal.StatusSent,
				CreatedAt: created}}, nil
		},
		CountsFunc: func(ctx context.Context) (map[domain.InteractionType]map[string]int, error) {
			return map[domain.InteractionType]map[string]int{domain.InteractionLike: {journal.StatusSent: 1}}, nil
		},
	}

	t.Run("default limit", func(t *testing.T) {
		srv := New(testConfig(), &fakeSessions{}, nil, jrnl, "test", false)
		w := do(t, srv, "GET", "/api/v1/interactions", "tok", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Entries []journal.Entry                           `json:"entries"`
			Counts  map[domain.InteractionType]map[string]int `json:"counts"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "b1", resp.Entries[0].ItemID)
		assert.Equal(t, 1, resp.Counts[domain.InteractionLike][journal.StatusSent])
		assert.Equal(t, 50, jrnl.RecentCalls()[0].Limit)
	})

	t.Run("limits", func(t *testing.T) {
		srv := New(testConfig(), &fakeSessions{}, nil, jrnl, "test", false)
		w := do(t, srv, "GET", "/api/v1/interactions?limit=5", "tok", "")
		require.Equal(t, http.StatusOK, w.Code)
		calls := jrnl.RecentCalls()
		assert.Equal(t, 5, calls[len(calls)-1].Limit)

		for _, v := range []string{"0", "1001", "abc", "-1"} {
			w = do(t, srv, "GET", "/api/v1/interactions?limit="+v, "tok", "")
			assert.Equal(t, http.StatusBadRequest, w.Code, v)
		}
	})

	t.Run("journal error", func(t *testing.T) {
		failing := &mocks.JournalMock{
			RecentFunc: func(ctx context.Context, limit int) ([]journal.Entry, error) {
				return nil, errors.New("database is locked")
			},
		}
		srv := New(testConfig(), &fakeSessions{}, nil, failing, "test", false)
		w := do(t, srv, "GET", "/api/v1/interactions", "tok", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("token required", func(t *testing.T) {
		srv := New(testConfig(), &fakeSessions{}, nil, jrnl, "test", false)
		calls := len(jrnl.RecentCalls())
		w := do(t, srv, "GET", "/api/v1/interactions", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Len(t, jrnl.RecentCalls(), calls, "journal not reached")
	})

	t.Run("disabled", func(t *testing.T) {
		srv := New(testConfig(), &fakeSessions{}, nil, nil, "test", false)
		w := do(t, srv, "GET", "/api/v1/interactions", "tok", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
