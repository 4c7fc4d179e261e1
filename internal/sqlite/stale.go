package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// sqliteTimeLayout matches the format datetime('now') writes, so a cutoff
// computed in Go compares correctly against stored timestamps.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// staleCutoff returns the timestamp before which a crawled node counts as
// stale. The window is bound as a plain value, never interpolated into SQL.
func staleCutoff(staleDays int) string {
	return time.Now().UTC().AddDate(0, 0, -staleDays).Format(sqliteTimeLayout)
}

// nowTimestamp returns the current UTC time in the store's timestamp format.
func nowTimestamp() string {
	return time.Now().UTC().Format(sqliteTimeLayout)
}

// NextCrawlTarget returns the node most due for a re-crawl: never-crawled
// nodes first, then nodes whose last crawl is older than staleDays, oldest
// first within each group. Returns nil when nothing is due.
func (s *Store) NextCrawlTarget(staleDays int) (*types.Node, error) {
	return s.NextCrawlTargetExcluding(staleDays, nil)
}

// NextCrawlTargetExcluding is NextCrawlTarget with a set of node ids to skip.
// The auto-crawl loop passes its in-flight ids here; a node being crawled has
// no timestamp yet and would otherwise be selected again.
func (s *Store) NextCrawlTargetExcluding(staleDays int, excluding []int64) (*types.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes
		 WHERE (last_crawled IS NULL OR last_crawled < ?)`
	args := []any{staleCutoff(staleDays)}
	if len(excluding) > 0 {
		query += " AND id NOT IN (?" + strings.Repeat(", ?", len(excluding)-1) + ")"
		for _, id := range excluding {
			args = append(args, id)
		}
	}
	query += `
		 ORDER BY
			CASE WHEN last_crawled IS NULL THEN 0 ELSE 1 END,
			last_crawled ASC
		 LIMIT 1`

	row := s.db.QueryRow(query, args...)
	n, err := scanNode(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("selecting crawl target: %w", err)
	}
	return &n, nil
}

// AutoCrawlStatus reports the pending backlog under the same staleness
// definition as NextCrawlTarget, plus the most recently crawled node.
func (s *Store) AutoCrawlStatus(staleDays int) (types.AutoCrawlStatus, error) {
	var status types.AutoCrawlStatus

	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM nodes WHERE last_crawled IS NULL OR last_crawled < ?",
		staleCutoff(staleDays),
	).Scan(&status.NodesPending)
	if err != nil {
		return status, fmt.Errorf("counting pending nodes: %w", err)
	}

	var id int64
	var url string
	err = s.db.QueryRow(
		"SELECT id, url FROM nodes WHERE last_crawled IS NOT NULL ORDER BY last_crawled DESC LIMIT 1",
	).Scan(&id, &url)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Nothing crawled yet.
	case err != nil:
		return status, fmt.Errorf("finding last crawled node: %w", err)
	default:
		status.LastCrawledID = &id
		status.LastCrawledURL = &url
	}

	return status, nil
}

// ResetCrawlTimestamps clears last_crawled on every node, forcing a full
// re-crawl, and returns the number of nodes affected.
func (s *Store) ResetCrawlTimestamps() (int, error) {
	res, err := s.db.Exec("UPDATE nodes SET last_crawled = NULL")
	if err != nil {
		return 0, fmt.Errorf("resetting crawl timestamps: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking reset count: %w", err)
	}
	return int(affected), nil
}
