package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{Upstream: UpstreamConfig{BaseURL: "http://localhost:5000/api"}}
		cfg.setDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", config: valid()},
		{
			name: "missing server listen",
			config: func() *Config {
				c := valid()
				c.Server.Listen = ""
				return c
			}(),
			wantErr: true,
			errMsg:  "server.listen is required",
		},
		{
			name: "missing upstream",
			config: func() *Config {
				c := valid()
				c.Upstream.BaseURL = ""
				return c
			}(),
			wantErr: true,
			errMsg:  "upstream.base_url is required",
		},
		{
			name: "journal without dsn",
			config: func() *Config {
				c := valid()
				c.Journal.Enabled = true
				c.Journal.DSN = ""
				return c
			}(),
			wantErr: true,
			errMsg:  "journal.dsn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAgainstEmbeddedSchema(tt.config)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMissingFields(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)

	val := map[string]any{"server": map[string]any{"listen": ":8080"}}
	missing := missingFields(schema.Definitions["Config"], schema.Definitions, val, "")
	assert.Contains(t, missing, "upstream")
	assert.Contains(t, missing, "server.timeout")
	assert.NotContains(t, missing, "server.listen")
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	generated, err := GenerateSchema()
	require.NoError(t, err)

	var embedded map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))
	defs, ok := embedded["$defs"].(map[string]any)
	require.True(t, ok)
	for name := range generated.Definitions {
		assert.Contains(t, defs, name, "schema.json is stale, run go generate")
	}
	assert.Equal(t, "#/$defs/Config", embedded["$ref"])
}
