// Package crawl orchestrates the graph store and the page fetcher: refreshing
// single nodes, selecting re-crawl targets by staleness, expanding the graph
// from a node's outbound links, and running the bounded auto-crawl loop.
package crawl

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/voidgraph/internal/fetcher"
	"github.com/mesh-intelligence/voidgraph/internal/sqlite"
	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// Engine ties one graph store to one fetcher.
type Engine struct {
	store *sqlite.Store
	fetch *fetcher.Fetcher
	log   *zap.Logger
}

// New creates an Engine over the given store and fetcher.
func New(store *sqlite.Store, fetch *fetcher.Fetcher, log *zap.Logger) *Engine {
	return &Engine{store: store, fetch: fetch, log: log}
}

// NextTarget returns the node most due for a re-crawl, or nil.
func (e *Engine) NextTarget(staleDays int) (*types.Node, error) {
	return e.store.NextCrawlTarget(staleDays)
}

// Status reports the re-crawl backlog under the given staleness window.
func (e *Engine) Status(staleDays int) (types.AutoCrawlStatus, error) {
	return e.store.AutoCrawlStatus(staleDays)
}

// Reset clears every node's crawl timestamp, forcing a full re-crawl.
func (e *Engine) Reset() (int, error) {
	return e.store.ResetCrawlTimestamps()
}

// RandomTarget returns a uniformly random alive node for discovery, or
// ErrNotFound when the graph has none.
func (e *Engine) RandomTarget() (types.Node, error) {
	return e.store.RandomAliveNode()
}

// fetchOutcome carries a fetch result across the isolation boundary.
type fetchOutcome struct {
	meta *fetcher.Metadata
	err  error
}

// fetchIsolated runs one fetch on its own goroutine so a hung request never
// holds the calling context hostage; the caller still waits synchronously
// for the result or the fetch timeout. A panic in the fetch surfaces as an
// ordinary error.
func (e *Engine) fetchIsolated(ctx context.Context, url string, collectLinks bool) (*fetcher.Metadata, error) {
	ch := make(chan fetchOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- fetchOutcome{err: fmt.Errorf("fetch terminated abnormally: %v", r)}
			}
		}()
		meta, err := e.fetch.Fetch(ctx, url, collectLinks)
		ch <- fetchOutcome{meta: meta, err: err}
	}()
	out := <-ch
	return out.meta, out.err
}

// crawlUpdate maps fetched metadata to the coalesce-update arguments: empty
// values become nil so the stored ones are preserved.
func crawlUpdate(meta *fetcher.Metadata) (title, favicon *string) {
	if meta.Title != "" {
		title = &meta.Title
	}
	if meta.Favicon != "" {
		favicon = &meta.Favicon
	}
	return title, favicon
}
