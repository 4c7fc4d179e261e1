package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// MergeSessions reconciles the given session databases into this store.
// One URL→id map is built from the active graph up front and shared across
// all sources, so a URL merged in from one database is recognized as a
// duplicate in the next. A database that cannot be opened or read is skipped
// whole, without touching the counters. URLs are compared case-sensitively,
// the same policy the storage layer enforces.
func (s *Store) MergeSessions(paths []string) (types.MergeResult, error) {
	var result types.MergeResult

	urls, err := s.NodeURLs()
	if err != nil {
		return result, err
	}

	for _, path := range paths {
		src, err := openSource(path)
		if err != nil {
			continue
		}
		if err := s.mergeOne(src, urls, &result); err != nil {
			src.Close()
			return result, fmt.Errorf("merging %s: %w", path, err)
		}
		src.Close()
		result.SessionsMerged++
	}

	return result, nil
}

// mergeOne copies one source database's nodes and edges into the store,
// remapping ids through a map scoped to this database only.
func (s *Store) mergeOne(src *sql.DB, urls map[string]int64, result *types.MergeResult) error {
	rows, err := src.Query(
		`SELECT id, url, title, favicon, screenshot,
			position_x, position_y, position_z, is_alive, last_crawled
		 FROM nodes`,
	)
	if err != nil {
		return fmt.Errorf("reading source nodes: %w", err)
	}

	idMap := make(map[int64]int64)
	for rows.Next() {
		var oldID int64
		var n types.Node
		var isAlive int
		if err := rows.Scan(
			&oldID, &n.URL, &n.Title, &n.Favicon, &n.Screenshot,
			&n.PositionX, &n.PositionY, &n.PositionZ, &isAlive, &n.LastCrawled,
		); err != nil {
			rows.Close()
			return fmt.Errorf("scanning source node: %w", err)
		}
		n.IsAlive = isAlive == 1

		if existingID, ok := urls[n.URL]; ok {
			idMap[oldID] = existingID
			result.NodesSkipped++
			continue
		}

		newID, created, err := s.InsertNodeIfAbsent(n)
		if err != nil {
			rows.Close()
			return err
		}
		idMap[oldID] = newID
		urls[n.URL] = newID
		if created {
			result.NodesMerged++
		} else {
			result.NodesSkipped++
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating source nodes: %w", err)
	}
	rows.Close()

	edgeRows, err := src.Query("SELECT source_id, target_id FROM edges")
	if err != nil {
		return fmt.Errorf("reading source edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var oldSource, oldTarget int64
		if err := edgeRows.Scan(&oldSource, &oldTarget); err != nil {
			return fmt.Errorf("scanning source edge: %w", err)
		}

		newSource, okSource := idMap[oldSource]
		newTarget, okTarget := idMap[oldTarget]
		if !okSource || !okTarget {
			// An endpoint never made it into the map; drop the edge.
			continue
		}

		created, err := s.CreateEdge(newSource, newTarget)
		if err != nil {
			return err
		}
		if created {
			result.EdgesMerged++
		}
	}
	return edgeRows.Err()
}

// openSource opens a source database read path and verifies it actually is
// a graph database. sql.Open is lazy and would happily create an empty file,
// so the path must exist and the nodes table must be queryable.
func openSource(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("statting source database: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	if _, err := db.Exec("SELECT COUNT(*) FROM nodes"); err != nil {
		db.Close()
		return nil, fmt.Errorf("validating source database: %w", err)
	}
	return db, nil
}
