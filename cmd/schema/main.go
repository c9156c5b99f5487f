// schema generator writes JSON schema of shelfscope configuration, used by go:generate in pkg/config
package main

import (
	"encoding/json"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/shelfscope/pkg/config"
)

func main() {
	out := "schema.json"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		lgr.Fatalf("can't generate schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		lgr.Fatalf("can't marshal schema: %v", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o600); err != nil { //nolint:gosec // schema is not sensitive
		lgr.Fatalf("can't write %s: %v", out, err)
	}
	lgr.Printf("[INFO] config schema written to %s", out)
}
