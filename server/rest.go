package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/shelfscope/pkg/discovery"
	"github.com/umputun/shelfscope/pkg/domain"
	"github.com/umputun/shelfscope/pkg/session"
)

// statusHandler returns server status with upstream health
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	upstream := "unavailable"
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if st, err := s.health.Health(ctx); err == nil {
			upstream = st
		} else {
			log.Printf("[WARN] upstream health check failed: %v", err)
		}
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"upstream": upstream,
	})
}

// createSessionHandler fetches the composite feed and starts a page session.
// Body is optional, user_id switches featured section to personal recommendations.
func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	id, sess, err := s.sessions.Create(r.Context(), tokenFrom(r), strings.TrimSpace(req.UserID))
	if err != nil {
		s.renderSessionError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusCreated, map[string]any{
		"id":    id,
		"feed":  sess.Feed(),
		"queue": sess.Queue(),
	})
}

// closeSessionHandler ends the page session
func (s *Server) closeSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Close(r.PathValue("id"), tokenFrom(r)); err != nil {
		s.renderSessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// feedHandler returns the cached composite feed of the session
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, sess.Feed())
}

// queueHandler returns the discovery queue state
func (s *Server) queueHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, sess.Queue())
}

// decideHandler applies like, dislike, wishlist or undo to the queue.
// Rejected commands are not errors, the response tells if the command was accepted.
func (s *Server) decideHandler(w http.ResponseWriter, r *http.Request) {
	cmd, err := discovery.ParseCommand(r.PathValue("action"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	accepted := sess.Apply(cmd)
	renderJSON(w, r, http.StatusOK, map[string]any{"command": cmd, "accepted": accepted, "queue": sess.Queue()})
}

// keyHandler maps a keyboard event to a queue command
func (s *Server) keyHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key  string `json:"key"`
		Ctrl bool   `json:"ctrl"`
		Meta bool   `json:"meta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	cmd, accepted := sess.HandleKey(req.Key, req.Ctrl, req.Meta)
	renderJSON(w, r, http.StatusOK, map[string]any{"command": cmd, "accepted": accepted, "queue": sess.Queue()})
}

// refreshHandler reloads the discovery queue, failed refresh returns 502 with the exhausted queue
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Refresh(r.Context()); err != nil {
		log.Printf("[WARN] queue refresh failed: %v", err)
		code := http.StatusBadGateway
		if errors.Is(err, domain.ErrAuthExpired) {
			code = http.StatusUnauthorized
		}
		renderJSON(w, r, code, map[string]any{"error": err.Error(), "queue": sess.Queue()})
		return
	}
	renderJSON(w, r, http.StatusOK, sess.Queue())
}

// interactionHandler reports an interaction with a feed item, e.g. a card click
func (s *Server) interactionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     string         `json:"type"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	typ, err := domain.ParseInteractionType(req.Type)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.ReportInteraction(r.PathValue("item"), typ, req.Metadata)
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// wishlistHandler toggles the wishlist flag of an item
func (s *Server) wishlistHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	on, err := sess.ToggleWishlist(r.PathValue("item"))
	if err != nil {
		s.renderSessionError(w, r, err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]bool{"on_wishlist": on})
}

// similarHandler returns items similar to the given one, limit is 8 by default
func (s *Server) similarHandler(w http.ResponseWriter, r *http.Request) {
	limit := 8
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 20 {
			renderError(w, r, fmt.Errorf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	items, err := sess.Similar(r.Context(), r.PathValue("item"), limit)
	if err != nil {
		log.Printf("[WARN] similar items failed: %v", err)
		code := http.StatusBadGateway
		if errors.Is(err, domain.ErrAuthExpired) {
			code = http.StatusUnauthorized
		}
		renderError(w, r, err, code)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"items": items})
}

// interactionsHandler returns the tail of the interaction journal
func (s *Server) interactionsHandler(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		renderError(w, r, errors.New("journal disabled"), http.StatusNotFound)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			renderError(w, r, fmt.Errorf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.journal.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to get journal entries: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	counts, err := s.journal.Counts(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get journal counts: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"entries": entries, "counts": counts})
}

// session looks up the session of the request, renders error response if it's not accessible
func (s *Server) session(w http.ResponseWriter, r *http.Request) (Session, bool) {
	sess, err := s.sessions.Get(r.PathValue("id"), tokenFrom(r))
	if err != nil {
		s.renderSessionError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) renderSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrUnknownItem):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, session.ErrForbidden):
		renderError(w, r, err, http.StatusForbidden)
	case errors.Is(err, domain.ErrAuthExpired):
		renderError(w, r, err, http.StatusUnauthorized)
	default:
		log.Printf("[ERROR] session request failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}
