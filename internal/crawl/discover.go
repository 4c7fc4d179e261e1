package crawl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/voidgraph/internal/fetcher"
	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// Discover expands the graph from one source node's outbound links. New
// nodes are placed near the source and capped at maxNewNodes; links whose
// target already exists only gain an edge, uncapped. With externalOnly set,
// links on the source's own host are skipped entirely.
//
// Unlike CrawlOne, a transport failure here aborts the whole operation: the
// source is marked dead and stamped, and no expansion happens.
func (e *Engine) Discover(ctx context.Context, nodeID int64, maxNewNodes int, externalOnly bool) (types.DiscoveryResult, error) {
	result := types.DiscoveryResult{SourceNodeID: nodeID}

	source, err := e.store.GetNode(nodeID)
	if err != nil {
		return result, err
	}
	sourceHost := fetcher.Hostname(source.URL)

	runID := uuid.NewString()
	e.log.Info("discovering links",
		zap.String("run_id", runID),
		zap.Int64("node_id", nodeID),
		zap.String("url", source.URL),
		zap.Int("max_new_nodes", maxNewNodes),
		zap.Bool("external_only", externalOnly))

	meta, err := e.fetchIsolated(ctx, source.URL, true)
	if err != nil {
		if derr := e.store.MarkNodeDead(nodeID); derr != nil {
			return result, derr
		}
		return result, fmt.Errorf("fetching source node %d: %w", nodeID, err)
	}

	title, favicon := crawlUpdate(meta)
	if err := e.store.UpdateNodeCrawl(nodeID, title, favicon, meta.Reachable); err != nil {
		return result, err
	}

	result.LinksFound = len(meta.Links)

	// Snapshot of every node URL; cost grows with the graph. The snapshot
	// drives batch-local dedup, but inserts stay race-safe because they go
	// through the store's insert-if-absent primitive.
	urls, err := e.store.NodeURLs()
	if err != nil {
		return result, err
	}

	for _, link := range meta.Links {
		if result.NodesAdded >= maxNewNodes {
			break
		}

		if targetID, ok := urls[link]; ok {
			created, err := e.store.CreateEdge(nodeID, targetID)
			if err != nil {
				return result, err
			}
			if created {
				result.EdgesAdded++
			}
			continue
		}

		if externalOnly && fetcher.Hostname(link) == sourceHost {
			continue
		}

		linkTitle := fetcher.Hostname(link)
		if linkTitle == "" {
			linkTitle = "Unknown"
		}
		x, y, z := nearbyPosition(source)

		newID, created, err := e.store.InsertNodeIfAbsent(types.Node{
			URL:       link,
			Title:     linkTitle,
			PositionX: x,
			PositionY: y,
			PositionZ: z,
			IsAlive:   true,
		})
		if err != nil {
			return result, err
		}
		urls[link] = newID

		if !created {
			// A concurrent writer inserted this URL after the snapshot;
			// treat it like a pre-existing target.
			edgeCreated, err := e.store.CreateEdge(nodeID, newID)
			if err != nil {
				return result, err
			}
			if edgeCreated {
				result.EdgesAdded++
			}
			continue
		}

		result.NewNodeIDs = append(result.NewNodeIDs, newID)
		result.NodesAdded++
		if _, err := e.store.CreateEdge(nodeID, newID); err != nil {
			return result, err
		}
		result.EdgesAdded++
	}

	e.log.Info("discovery finished",
		zap.String("run_id", runID),
		zap.Int64("node_id", nodeID),
		zap.Int("links_found", result.LinksFound),
		zap.Int("nodes_added", result.NodesAdded),
		zap.Int("edges_added", result.EdgesAdded))
	return result, nil
}
