package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// upper bounds of page sizes accepted by the recommendation service
const (
	maxFeaturedLimit = 20
	maxBecauseLimit  = 5
	maxQueueLimit    = 30
	maxAuthorsLimit  = 10
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Upstream  UpstreamConfig  `yaml:"upstream" json:"upstream" jsonschema:"description=Recommendation service client"`
	Feed      FeedConfig      `yaml:"feed" json:"feed" jsonschema:"description=Composite feed sections"`
	Discovery DiscoveryConfig `yaml:"discovery" json:"discovery" jsonschema:"description=Discovery queue settings"`
	Reporter  ReporterConfig  `yaml:"reporter" json:"reporter" jsonschema:"description=Interaction reporting"`
	Session   SessionConfig   `yaml:"session" json:"session" jsonschema:"description=Page sessions"`
	Journal   JournalConfig   `yaml:"journal" json:"journal" jsonschema:"description=Local journal of reported interactions"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen   string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	Throttle int           `yaml:"throttle" json:"throttle" jsonschema:"default=1000,description=Maximum number of concurrent requests"`
}

// UpstreamConfig holds recommendation service settings
type UpstreamConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url" jsonschema:"required,description=Base URL of the recommendation API (e.g. http://localhost:5000/api)"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Shelfscope/1.0,description=User agent for upstream requests"`
}

// FeedConfig holds page sizes of the composite feed sections
type FeedConfig struct {
	FeaturedLimit int           `yaml:"featured_limit" json:"featured_limit" jsonschema:"default=10,minimum=1,maximum=20,description=Featured recommendations"`
	BecauseLimit  int           `yaml:"because_limit" json:"because_limit" jsonschema:"default=3,minimum=1,maximum=5,description=Groups derived from borrowed books"`
	QueueLimit    int           `yaml:"queue_limit" json:"queue_limit" jsonschema:"default=12,minimum=1,maximum=30,description=Discovery queue items loaded with the page"`
	AuthorsLimit  int           `yaml:"authors_limit" json:"authors_limit" jsonschema:"default=6,minimum=1,maximum=10,description=Known authors"`
	SourceTimeout time.Duration `yaml:"source_timeout" json:"source_timeout" jsonschema:"default=10s,description=Timeout of every section request"`
}

// DiscoveryConfig holds discovery queue settings
type DiscoveryConfig struct {
	QueueLimit  int           `yaml:"queue_limit" json:"queue_limit" jsonschema:"default=20,minimum=1,maximum=30,description=Items requested on queue refresh"`
	SettleDelay time.Duration `yaml:"settle_delay" json:"settle_delay" jsonschema:"default=400ms,description=Transition time after a decision"`
}

// ReporterConfig holds interaction reporting settings
type ReporterConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=5s,description=Timeout of a single report without retries"`
}

// SessionConfig holds page session settings
type SessionConfig struct {
	TTL         time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=30m,description=Idle time before a session is dropped"`
	MaxSessions int           `yaml:"max_sessions" json:"max_sessions" jsonschema:"default=1000,minimum=1,description=Maximum number of active sessions"`
}

// JournalConfig holds local journal database settings
type JournalConfig struct {
	Enabled         bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Record results of interaction reports"`
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:shelfscope.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	setDuration := func(v *time.Duration, def time.Duration) {
		if *v == 0 {
			*v = def
		}
	}
	setInt := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}

	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	setDuration(&c.Server.Timeout, 30*time.Second)
	setInt(&c.Server.Throttle, 1000)

	setDuration(&c.Upstream.Timeout, 10*time.Second)
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = "Shelfscope/1.0"
	}

	setInt(&c.Feed.FeaturedLimit, 10)
	setInt(&c.Feed.BecauseLimit, 3)
	setInt(&c.Feed.QueueLimit, 12)
	setInt(&c.Feed.AuthorsLimit, 6)
	setDuration(&c.Feed.SourceTimeout, 10*time.Second)

	setInt(&c.Discovery.QueueLimit, 20)
	setDuration(&c.Discovery.SettleDelay, 400*time.Millisecond)

	setDuration(&c.Reporter.Timeout, 5*time.Second)

	setDuration(&c.Session.TTL, 30*time.Minute)
	setInt(&c.Session.MaxSessions, 1000)

	if c.Journal.DSN == "" {
		c.Journal.DSN = "file:shelfscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	setInt(&c.Journal.MaxOpenConns, 10)
	setInt(&c.Journal.MaxIdleConns, 5)
	setInt(&c.Journal.ConnMaxLifetime, 3600)
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if cfg.Upstream.Timeout < 100*time.Millisecond {
		return fmt.Errorf("upstream.timeout must be at least 100ms")
	}

	limits := []struct {
		name     string
		val, max int
	}{
		{"feed.featured_limit", cfg.Feed.FeaturedLimit, maxFeaturedLimit},
		{"feed.because_limit", cfg.Feed.BecauseLimit, maxBecauseLimit},
		{"feed.queue_limit", cfg.Feed.QueueLimit, maxQueueLimit},
		{"feed.authors_limit", cfg.Feed.AuthorsLimit, maxAuthorsLimit},
		{"discovery.queue_limit", cfg.Discovery.QueueLimit, maxQueueLimit},
	}
	for _, l := range limits {
		if l.val < 1 || l.val > l.max {
			return fmt.Errorf("%s must be between 1 and %d", l.name, l.max)
		}
	}

	if cfg.Discovery.SettleDelay < 0 {
		return fmt.Errorf("discovery.settle_delay must be non-negative")
	}
	if cfg.Session.MaxSessions < 1 {
		return fmt.Errorf("session.max_sessions must be at least 1")
	}
	if cfg.Session.TTL < time.Minute {
		return fmt.Errorf("session.ttl must be at least 1 minute")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server listen address, timeout and throttle limit
func (c *Config) GetServerConfig() (listen string, timeout time.Duration, throttle int) {
	return c.Server.Listen, c.Server.Timeout, c.Server.Throttle
}
