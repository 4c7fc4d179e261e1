// Package sqlite implements the SQLite graph store: the nodes and edges
// tables, their identity and uniqueness invariants, staleness queries, and
// the merge/import reconciliation paths.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps one SQLite graph database. All graph mutations go through it.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the graph database at path, with WAL
// mode and foreign keys enabled, and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// NodeCount returns the number of nodes in the graph.
func (s *Store) NodeCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting nodes: %w", err)
	}
	return n, nil
}

// EdgeCount returns the number of edges in the graph.
func (s *Store) EdgeCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM edges").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting edges: %w", err)
	}
	return n, nil
}
