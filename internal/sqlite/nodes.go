package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// nodeColumns is the standard column order scanned by scanNode.
const nodeColumns = "id, url, title, favicon, screenshot, position_x, position_y, position_z, is_alive, last_crawled, created_at"

// scanNode scans a row into a Node. The row must carry nodeColumns in order.
func scanNode(scanner interface{ Scan(dest ...any) error }) (types.Node, error) {
	var n types.Node
	var isAlive int
	err := scanner.Scan(
		&n.ID, &n.URL, &n.Title, &n.Favicon, &n.Screenshot,
		&n.PositionX, &n.PositionY, &n.PositionZ,
		&isAlive, &n.LastCrawled, &n.CreatedAt,
	)
	n.IsAlive = isAlive == 1
	return n, err
}

// CreateNode inserts a new node at the given position and returns its id.
// Returns ErrDuplicateURL if a node with the same URL already exists
// (compared case-sensitively).
func (s *Store) CreateNode(url, title string, x, y, z float64) (int64, error) {
	if title == "" {
		title = types.DefaultTitle
	}
	res, err := s.db.Exec(
		`INSERT INTO nodes (url, title, position_x, position_y, position_z, is_alive, created_at)
		 VALUES (?, ?, ?, ?, ?, 1, datetime('now'))`,
		url, title, x, y, z,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("creating node %s: %w", url, types.ErrDuplicateURL)
		}
		return 0, fmt.Errorf("creating node %s: %w", url, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new node id: %w", err)
	}
	return id, nil
}

// InsertNodeIfAbsent atomically inserts n unless a node with the same URL
// already exists, and returns the id either way. created reports whether a
// row was actually added. CreatedAt is always stamped by the store; the
// caller's value is ignored.
func (s *Store) InsertNodeIfAbsent(n types.Node) (id int64, created bool, err error) {
	title := n.Title
	if title == "" {
		title = types.DefaultTitle
	}
	isAlive := 0
	if n.IsAlive {
		isAlive = 1
	}
	res, err := s.db.Exec(
		`INSERT INTO nodes (url, title, favicon, screenshot, position_x, position_y, position_z, is_alive, last_crawled, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		 ON CONFLICT(url) DO NOTHING`,
		n.URL, title, n.Favicon, n.Screenshot,
		n.PositionX, n.PositionY, n.PositionZ, isAlive, n.LastCrawled,
	)
	if err != nil {
		return 0, false, fmt.Errorf("inserting node %s: %w", n.URL, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("checking node insert: %w", err)
	}
	if affected > 0 {
		id, err = res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("reading new node id: %w", err)
		}
		return id, true, nil
	}

	// Conflict: resolve the existing row's id.
	err = s.db.QueryRow("SELECT id FROM nodes WHERE url = ?", n.URL).Scan(&id)
	if err != nil {
		return 0, false, fmt.Errorf("resolving existing node %s: %w", n.URL, err)
	}
	return id, false, nil
}

// GetNode returns the node with the given id, or ErrNotFound.
func (s *Store) GetNode(id int64) (types.Node, error) {
	row := s.db.QueryRow("SELECT "+nodeColumns+" FROM nodes WHERE id = ?", id)
	n, err := scanNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Node{}, fmt.Errorf("node %d: %w", id, types.ErrNotFound)
		}
		return types.Node{}, fmt.Errorf("getting node %d: %w", id, err)
	}
	return n, nil
}

// NodeURLs returns a URL→id map over every node. Used by the bulk dedup
// paths; cost is proportional to graph size.
func (s *Store) NodeURLs() (map[string]int64, error) {
	rows, err := s.db.Query("SELECT id, url FROM nodes")
	if err != nil {
		return nil, fmt.Errorf("listing node urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]int64)
	for rows.Next() {
		var id int64
		var url string
		if err := rows.Scan(&id, &url); err != nil {
			return nil, fmt.Errorf("scanning node url: %w", err)
		}
		urls[url] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating node urls: %w", err)
	}
	return urls, nil
}

// UpdateNodeCrawl applies a crawl outcome to a node. Title and favicon are
// coalesced: a nil value preserves the stored one. is_alive and last_crawled
// are always overwritten, so the node never returns to the never-crawled
// bucket after an attempt.
func (s *Store) UpdateNodeCrawl(id int64, title, favicon *string, isAlive bool) error {
	alive := 0
	if isAlive {
		alive = 1
	}
	_, err := s.db.Exec(
		`UPDATE nodes SET
			title = COALESCE(?, title),
			favicon = COALESCE(?, favicon),
			is_alive = ?,
			last_crawled = datetime('now')
		 WHERE id = ?`,
		title, favicon, alive, id,
	)
	if err != nil {
		return fmt.Errorf("updating node %d: %w", id, err)
	}
	return nil
}

// MarkNodeDead records a failed crawl: is_alive false, last_crawled stamped.
func (s *Store) MarkNodeDead(id int64) error {
	_, err := s.db.Exec(
		"UPDATE nodes SET is_alive = 0, last_crawled = datetime('now') WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking node %d dead: %w", id, err)
	}
	return nil
}

// DeleteNode removes a node and every edge referencing it as source or
// target. Deleting an absent id is a no-op.
func (s *Store) DeleteNode(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning node deletion: %w", err)
	}
	defer tx.Rollback()

	// Cascade is explicit: edges first, then the node.
	if _, err := tx.Exec("DELETE FROM edges WHERE source_id = ? OR target_id = ?", id, id); err != nil {
		return fmt.Errorf("deleting edges for node %d: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM nodes WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting node %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing node deletion: %w", err)
	}
	return nil
}

// RandomAliveNode returns a uniformly random alive node, or ErrNotFound if
// the graph has no alive nodes.
func (s *Store) RandomAliveNode() (types.Node, error) {
	row := s.db.QueryRow(
		"SELECT " + nodeColumns + " FROM nodes WHERE is_alive = 1 ORDER BY RANDOM() LIMIT 1",
	)
	n, err := scanNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Node{}, types.ErrNotFound
		}
		return types.Node{}, fmt.Errorf("picking random node: %w", err)
	}
	return n, nil
}
