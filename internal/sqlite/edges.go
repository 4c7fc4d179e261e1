package sqlite

import "fmt"

// CreateEdge inserts the directed edge source→target. The insert is
// idempotent: created reports whether a new row was actually added. No check
// is made that the endpoints exist; callers resolve ids first.
func (s *Store) CreateEdge(sourceID, targetID int64) (created bool, err error) {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO edges (source_id, target_id) VALUES (?, ?)",
		sourceID, targetID,
	)
	if err != nil {
		return false, fmt.Errorf("creating edge %d->%d: %w", sourceID, targetID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking edge insert: %w", err)
	}
	return affected > 0, nil
}
