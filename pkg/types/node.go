package types

// DefaultTitle is the placeholder assigned to nodes whose page title is
// unknown, either because the page has not been crawled yet or because the
// source data carried no title.
const DefaultTitle = "Untitled"

// Node represents one discovered page in the graph. Position is a free-form
// 3-D placement with no enforced bounds; the engine only ever generates
// positions, it never interprets them.
type Node struct {
	// ID is assigned by the store on creation.
	ID int64 `json:"id"`

	// URL is the node's canonical address. Unique across the graph,
	// compared case-sensitively.
	URL string `json:"url"`

	// Title is the page title, never empty (DefaultTitle if unknown).
	Title string `json:"title"`

	// Favicon is the resolved icon URL, if one is known.
	Favicon *string `json:"favicon,omitempty"`

	// Screenshot is an inline image reference (a data URL), if captured.
	Screenshot *string `json:"screenshot,omitempty"`

	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	PositionZ float64 `json:"position_z"`

	// IsAlive reports whether the last crawl reached the page. New nodes
	// start alive.
	IsAlive bool `json:"is_alive"`

	// LastCrawled is nil until the node's first crawl attempt.
	LastCrawled *string `json:"last_crawled,omitempty"`

	// CreatedAt is set once by the store and never mutated.
	CreatedAt string `json:"created_at"`
}

// Edge is a directed link between two nodes. The (SourceID, TargetID) pair
// is unique; inserting a duplicate is a no-op, not an error.
type Edge struct {
	ID       int64 `json:"id"`
	SourceID int64 `json:"source_id"`
	TargetID int64 `json:"target_id"`
}

// SessionInfo describes one session database on disk.
type SessionInfo struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	LastModified string `json:"last_modified"`
	NodeCount    int    `json:"node_count"`
	EdgeCount    int    `json:"edge_count"`
}

// SessionStats holds the row counts of a session database.
type SessionStats struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}
