// Unit tests for the staleness scheduler queries.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setLastCrawled backdates a node's crawl timestamp by the given number of
// days so scheduler queries can be tested without waiting.
func setLastCrawled(t *testing.T, store *Store, id int64, daysAgo int) {
	t.Helper()
	ts := time.Now().UTC().AddDate(0, 0, -daysAgo).Format(sqliteTimeLayout)
	_, err := store.db.Exec("UPDATE nodes SET last_crawled = ? WHERE id = ?", ts, id)
	require.NoError(t, err)
}

func TestNextCrawlTarget_EmptyGraph(t *testing.T) {
	store := setupStore(t)

	target, err := store.NextCrawlTarget(7)
	require.NoError(t, err)
	assert.Nil(t, target)
}

func TestNextCrawlTarget_NeverCrawledBeforeStale(t *testing.T) {
	store := setupStore(t)

	stale, err := store.CreateNode("https://stale.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, stale, 30)

	never, err := store.CreateNode("https://never.com", "", 0, 0, 0)
	require.NoError(t, err)

	target, err := store.NextCrawlTarget(7)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, never, target.ID, "never-crawled nodes outrank even very stale ones")
}

func TestNextCrawlTarget_OldestStaleFirst(t *testing.T) {
	store := setupStore(t)

	older, err := store.CreateNode("https://older.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, older, 20)

	newer, err := store.CreateNode("https://newer.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, newer, 10)

	target, err := store.NextCrawlTarget(7)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, older, target.ID)
}

func TestNextCrawlTarget_FreshNodeNotDue(t *testing.T) {
	store := setupStore(t)

	fresh, err := store.CreateNode("https://fresh.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, fresh, 1)

	target, err := store.NextCrawlTarget(7)
	require.NoError(t, err)
	assert.Nil(t, target)

	// A tighter window makes the same node due again.
	target, err = store.NextCrawlTarget(0)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, fresh, target.ID)
}

func TestNextCrawlTargetExcluding(t *testing.T) {
	store := setupStore(t)

	first, err := store.CreateNode("https://first.com", "", 0, 0, 0)
	require.NoError(t, err)
	second, err := store.CreateNode("https://second.com", "", 0, 0, 0)
	require.NoError(t, err)

	// Both never crawled; exclusion must yield the runner-up, not the same
	// node again.
	target, err := store.NextCrawlTargetExcluding(7, []int64{first})
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, second, target.ID)

	target, err = store.NextCrawlTargetExcluding(7, []int64{first, second})
	require.NoError(t, err)
	assert.Nil(t, target, "excluding every due node leaves nothing")
}

func TestAutoCrawlStatus(t *testing.T) {
	store := setupStore(t)

	status, err := store.AutoCrawlStatus(7)
	require.NoError(t, err)
	assert.Equal(t, 0, status.NodesPending)
	assert.Nil(t, status.LastCrawledID)

	_, err = store.CreateNode("https://never.com", "", 0, 0, 0)
	require.NoError(t, err)
	recent, err := store.CreateNode("https://recent.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, recent, 1)
	stale, err := store.CreateNode("https://stale.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, stale, 30)

	status, err = store.AutoCrawlStatus(7)
	require.NoError(t, err)
	assert.Equal(t, 2, status.NodesPending, "never-crawled and stale nodes are pending")
	require.NotNil(t, status.LastCrawledID)
	assert.Equal(t, recent, *status.LastCrawledID)
	require.NotNil(t, status.LastCrawledURL)
	assert.Equal(t, "https://recent.com", *status.LastCrawledURL)
}

func TestResetCrawlTimestamps(t *testing.T) {
	store := setupStore(t)

	a, err := store.CreateNode("https://a.com", "", 0, 0, 0)
	require.NoError(t, err)
	setLastCrawled(t, store, a, 1)
	_, err = store.CreateNode("https://b.com", "", 0, 0, 0)
	require.NoError(t, err)

	affected, err := store.ResetCrawlTimestamps()
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	status, err := store.AutoCrawlStatus(7)
	require.NoError(t, err)
	assert.Equal(t, 2, status.NodesPending)

	node, err := store.GetNode(a)
	require.NoError(t, err)
	assert.Nil(t, node.LastCrawled)
}
