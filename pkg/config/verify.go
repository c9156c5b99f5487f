package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	root := &schema
	if ref := defName(schema.Ref); ref != "" {
		root = schema.Definitions[ref]
	}
	if root == nil {
		return fmt.Errorf("schema has no root definition")
	}

	if missing := missingFields(root, schema.Definitions, configMap, ""); len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// missingFields walks the schema and collects required properties absent in the config map
func missingFields(s *jsonschema.Schema, defs jsonschema.Definitions, val map[string]any, prefix string) []string {
	var res []string
	for _, name := range s.Required {
		if _, ok := val[name]; !ok {
			res = append(res, prefix+name)
		}
	}
	if s.Properties == nil {
		return res
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		sub := pair.Value
		if ref := defName(sub.Ref); ref != "" {
			sub = defs[ref]
		}
		nested, ok := val[pair.Key].(map[string]any)
		if sub == nil || !ok {
			continue
		}
		res = append(res, missingFields(sub, defs, nested, prefix+pair.Key+".")...)
	}
	return res
}

func defName(ref string) string {
	return strings.TrimPrefix(ref, "#/$defs/")
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if cfg.Journal.Enabled && cfg.Journal.DSN == "" {
		return fmt.Errorf("journal.dsn is required when journal is enabled")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
