package crawl

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// CrawlOne refreshes one node's metadata. It fails only if the node id does
// not resolve or the store itself fails; a transport failure is absorbed
// into graph state (node marked dead, timestamp stamped) and reported in the
// result's Error field. is_alive and last_crawled are always overwritten,
// even on total fetch failure, so the scheduler never re-selects the node
// immediately.
func (e *Engine) CrawlOne(ctx context.Context, nodeID int64) (types.CrawlResult, error) {
	node, err := e.store.GetNode(nodeID)
	if err != nil {
		return types.CrawlResult{}, err
	}

	runID := uuid.NewString()
	e.log.Info("crawling node",
		zap.String("run_id", runID),
		zap.Int64("node_id", nodeID),
		zap.String("url", node.URL))

	meta, err := e.fetchIsolated(ctx, node.URL, false)
	if err != nil {
		if derr := e.store.MarkNodeDead(nodeID); derr != nil {
			return types.CrawlResult{}, derr
		}
		msg := err.Error()
		e.log.Warn("crawl failed",
			zap.String("run_id", runID),
			zap.Int64("node_id", nodeID),
			zap.String("error", msg))
		return types.CrawlResult{NodeID: nodeID, IsAlive: false, Error: &msg}, nil
	}

	title, favicon := crawlUpdate(meta)
	if err := e.store.UpdateNodeCrawl(nodeID, title, favicon, meta.Reachable); err != nil {
		return types.CrawlResult{}, err
	}

	return types.CrawlResult{
		NodeID:  nodeID,
		Title:   title,
		Favicon: favicon,
		IsAlive: meta.Reachable,
	}, nil
}
