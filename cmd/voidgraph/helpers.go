// Shared helpers for voidgraph CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/voidgraph/internal/crawl"
	"github.com/mesh-intelligence/voidgraph/internal/fetcher"
	"github.com/mesh-intelligence/voidgraph/internal/sqlite"
	"github.com/mesh-intelligence/voidgraph/internal/session"
)

// openStore resolves the data directory and --session flag to a database
// path and opens it, creating the directory and schema as needed. The caller
// must defer store.Close().
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	path := session.Resolve(dataDir, flagSession)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	return sqlite.Open(path)
}

// newEngine builds a crawl engine over an open store using the loaded config.
func newEngine(store *sqlite.Store) *crawl.Engine {
	fetch := fetcher.New(cfg.UserAgent, logger)
	return crawl.New(store, fetch, logger)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// strOrDash renders an optional string for plain output.
func strOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
