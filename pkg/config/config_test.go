package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
upstream:
  base_url: http://rec.example.com/api
  timeout: 3s
feed:
  featured_limit: 20
  because_limit: 5
discovery:
  queue_limit: 30
  settle_delay: 250ms
session:
  ttl: 1h
  max_sessions: 50
journal:
  enabled: true
  dsn: file:/tmp/j.db
`))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "http://rec.example.com/api", cfg.Upstream.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
		assert.Equal(t, 20, cfg.Feed.FeaturedLimit)
		assert.Equal(t, 5, cfg.Feed.BecauseLimit)
		assert.Equal(t, 30, cfg.Discovery.QueueLimit)
		assert.Equal(t, 250*time.Millisecond, cfg.Discovery.SettleDelay)
		assert.Equal(t, time.Hour, cfg.Session.TTL)
		assert.Equal(t, 50, cfg.Session.MaxSessions)
		assert.True(t, cfg.Journal.Enabled)
		assert.Equal(t, "file:/tmp/j.db", cfg.Journal.DSN)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "upstream:\n  base_url: http://localhost:5000/api\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 1000, cfg.Server.Throttle)
		assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
		assert.Equal(t, "Shelfscope/1.0", cfg.Upstream.UserAgent)
		assert.Equal(t, FeedConfig{FeaturedLimit: 10, BecauseLimit: 3, QueueLimit: 12, AuthorsLimit: 6,
			SourceTimeout: 10 * time.Second}, cfg.Feed)
		assert.Equal(t, DiscoveryConfig{QueueLimit: 20, SettleDelay: 400 * time.Millisecond}, cfg.Discovery)
		assert.Equal(t, 5*time.Second, cfg.Reporter.Timeout)
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.Equal(t, 1000, cfg.Session.MaxSessions)
		assert.False(t, cfg.Journal.Enabled)
		assert.Contains(t, cfg.Journal.DSN, "shelfscope.db")
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("SHELFSCOPE_UPSTREAM", "http://env.example.com")
		cfg, err := Load(writeConfig(t, "upstream:\n  base_url: ${SHELFSCOPE_UPSTREAM}/api\n"))
		require.NoError(t, err)
		assert.Equal(t, "http://env.example.com/api", cfg.Upstream.BaseURL)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestValidate(t *testing.T) {
	tbl := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"no upstream", func(c *Config) { c.Upstream.BaseURL = "" }, "upstream.base_url is required"},
		{"featured over cap", func(c *Config) { c.Feed.FeaturedLimit = 21 }, "feed.featured_limit must be between 1 and 20"},
		{"because over cap", func(c *Config) { c.Feed.BecauseLimit = 6 }, "feed.because_limit must be between 1 and 5"},
		{"queue over cap", func(c *Config) { c.Discovery.QueueLimit = 31 }, "discovery.queue_limit must be between 1 and 30"},
		{"authors negative", func(c *Config) { c.Feed.AuthorsLimit = -1 }, "feed.authors_limit must be between 1 and 10"},
		{"negative settle", func(c *Config) { c.Discovery.SettleDelay = -time.Second }, "discovery.settle_delay"},
		{"short ttl", func(c *Config) { c.Session.TTL = time.Second }, "session.ttl"},
		{"short server timeout", func(c *Config) { c.Server.Timeout = time.Millisecond }, "server timeout"},
		{"short upstream timeout", func(c *Config) { c.Upstream.Timeout = time.Millisecond }, "upstream.timeout"},
		{"valid", func(c *Config) {}, ""},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Upstream: UpstreamConfig{BaseURL: "http://localhost"}}
			cfg.setDefaults()
			tt.modify(cfg)
			err := validate(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second, Throttle: 50}}

	listen, timeout, throttle := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
	assert.Equal(t, 50, throttle)
}
