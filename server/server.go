package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/shelfscope/pkg/discovery"
	"github.com/umputun/shelfscope/pkg/domain"
	"github.com/umputun/shelfscope/pkg/journal"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/session.go -pkg mocks -skip-ensure -fmt goimports . Session
//go:generate moq -out mocks/journal.go -pkg mocks -skip-ensure -fmt goimports . Journal
//go:generate moq -out mocks/health.go -pkg mocks -skip-ensure -fmt goimports . HealthChecker

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	sessions Sessions
	health   HealthChecker
	journal  Journal
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Sessions keeps page sessions of the recommendations UI
type Sessions interface {
	Create(ctx context.Context, token, userID string) (id string, s Session, err error)
	Get(id, token string) (Session, error)
	Close(id, token string) error
}

// Session is a single page lifetime with its composite feed and discovery queue
type Session interface {
	Feed() domain.CompositeFeed
	Queue() domain.QueueState
	Apply(cmd discovery.Command) bool
	HandleKey(key string, ctrl, meta bool) (discovery.Command, bool)
	Refresh(ctx context.Context) error
	ReportInteraction(itemID string, typ domain.InteractionType, metadata map[string]any)
	ToggleWishlist(itemID string) (bool, error)
	Similar(ctx context.Context, itemID string, limit int) ([]domain.RecommendationItem, error)
}

// Journal provides access to the local log of reported interactions
type Journal interface {
	Recent(ctx context.Context, limit int) ([]journal.Entry, error)
	Counts(ctx context.Context) (map[domain.InteractionType]map[string]int, error)
}

// HealthChecker reports status of the recommendation service
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration, throttle int)
}

// New initializes a new server instance, journal is optional and may be nil
func New(cfg ConfigProvider, sessions Sessions, health HealthChecker, jrnl Journal, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		sessions: sessions,
		health:   health,
		journal:  jrnl,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout, _ := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	_, _, throttle := s.config.GetServerConfig()
	if throttle <= 0 {
		throttle = 100
	}

	s.router.Use(rest.AppInfo("shelfscope", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(int64(throttle)))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB, requests are small json bodies
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.Group().Route(func(auth *routegroup.Bundle) {
			auth.Use(s.tokenMiddleware)
			auth.HandleFunc("GET /interactions", s.interactionsHandler)
			auth.HandleFunc("POST /sessions", s.createSessionHandler)
			auth.HandleFunc("DELETE /sessions/{id}", s.closeSessionHandler)
			auth.HandleFunc("GET /sessions/{id}/feed", s.feedHandler)
			auth.HandleFunc("GET /sessions/{id}/queue", s.queueHandler)
			auth.HandleFunc("POST /sessions/{id}/queue/refresh", s.refreshHandler)
			auth.HandleFunc("POST /sessions/{id}/queue/key", s.keyHandler)
			auth.HandleFunc("POST /sessions/{id}/queue/{action}", s.decideHandler)
			auth.HandleFunc("POST /sessions/{id}/items/{item}/interactions", s.interactionHandler)
			auth.HandleFunc("POST /sessions/{id}/items/{item}/wishlist", s.wishlistHandler)
			auth.HandleFunc("GET /sessions/{id}/items/{item}/similar", s.similarHandler)
		})
	})
}

type ctxKey string

const tokenKey ctxKey = "token"

// tokenMiddleware requires a bearer token and passes it to handlers in the request context
func (s *Server) tokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			renderError(w, r, errors.New("missing bearer token"), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey, strings.TrimSpace(token))))
	})
}

func tokenFrom(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
