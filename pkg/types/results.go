package types

// CrawlResult reports the outcome of refreshing a single node's metadata.
// A failed fetch is not an error at this level: Error carries the transport
// failure message and IsAlive is false, but the crawl itself succeeded.
type CrawlResult struct {
	NodeID  int64   `json:"node_id"`
	Title   *string `json:"title"`
	Favicon *string `json:"favicon"`
	IsAlive bool    `json:"is_alive"`
	Error   *string `json:"error"`
}

// DiscoveryResult reports one graph expansion from a source node.
// LinksFound is the raw extracted link count before any filtering, so it can
// exceed NodesAdded+EdgesAdded.
type DiscoveryResult struct {
	SourceNodeID int64   `json:"source_node_id"`
	LinksFound   int     `json:"links_found"`
	NodesAdded   int     `json:"nodes_added"`
	EdgesAdded   int     `json:"edges_added"`
	NewNodeIDs   []int64 `json:"new_node_ids"`
}

// AutoCrawlStatus summarizes the re-crawl backlog under a staleness window.
type AutoCrawlStatus struct {
	NodesPending   int     `json:"nodes_pending"`
	LastCrawledID  *int64  `json:"last_crawled_id"`
	LastCrawledURL *string `json:"last_crawled_url"`
}

// MergeResult reports a multi-database session merge. EdgesMerged counts only
// edges whose insert actually added a row.
type MergeResult struct {
	NodesMerged    int `json:"nodes_merged"`
	EdgesMerged    int `json:"edges_merged"`
	NodesSkipped   int `json:"nodes_skipped"`
	SessionsMerged int `json:"sessions_merged"`
}

// ImportStats reports a foreign crawler-database import. Edge counting
// follows the same rule as MergeResult: only newly created rows count.
type ImportStats struct {
	NodesImported int `json:"nodes_imported"`
	EdgesImported int `json:"edges_imported"`
	NodesSkipped  int `json:"nodes_skipped"`
}
