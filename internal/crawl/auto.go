package crawl

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AutoCrawl repeatedly selects the next stale node and crawls it, with at
// most workers fetches in flight at once. Nodes currently being crawled are
// excluded from selection, so the loop keeps dispatching down the backlog
// instead of stalling on the front-most node. When nothing is due it waits
// idleWait before checking again. The loop exits cleanly when ctx is
// canceled, after in-flight crawls finish. Storage failures stop the loop
// and propagate.
func (e *Engine) AutoCrawl(ctx context.Context, staleDays, workers int, idleWait time.Duration) error {
	if workers < 1 {
		workers = 1
	}
	if idleWait <= 0 {
		idleWait = time.Second
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	// In-flight ids; their timestamps only land when the crawl finishes, so
	// the scheduler must not see them.
	var mu sync.Mutex
	inflight := make(map[int64]struct{})

	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		mu.Lock()
		exclude := make([]int64, 0, len(inflight))
		for id := range inflight {
			exclude = append(exclude, id)
		}
		mu.Unlock()

		target, err := e.store.NextCrawlTargetExcluding(staleDays, exclude)
		if err != nil {
			return err
		}

		if target == nil {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(idleWait):
			}
			continue
		}

		mu.Lock()
		inflight[target.ID] = struct{}{}
		mu.Unlock()

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			mu.Lock()
			delete(inflight, target.ID)
			mu.Unlock()
			return nil
		}

		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			defer func() {
				<-sem
				mu.Lock()
				delete(inflight, id)
				mu.Unlock()
			}()

			if _, err := e.CrawlOne(ctx, id); err != nil {
				e.log.Error("auto-crawl worker failed",
					zap.Int64("node_id", id),
					zap.Error(err))
			}
		}(target.ID)
	}
}
