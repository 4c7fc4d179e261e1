// Unit tests for session merging.
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSessionDB creates a graph database at path with the given URL nodes
// and edges between them (referenced by index into urls).
func buildSessionDB(t *testing.T, path string, urls []string, edges [][2]int) {
	t.Helper()
	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	ids := make([]int64, len(urls))
	for i, u := range urls {
		ids[i], err = src.CreateNode(u, "", 0, 0, 0)
		require.NoError(t, err)
	}
	for _, e := range edges {
		_, err := src.CreateEdge(ids[e[0]], ids[e[1]])
		require.NoError(t, err)
	}
}

func TestMergeSessions(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()

	// Target already knows a.com.
	existing, err := store.CreateNode("https://a.com", "", 0, 0, 0)
	require.NoError(t, err)

	sessionA := filepath.Join(dir, "a.db")
	buildSessionDB(t, sessionA,
		[]string{"https://a.com", "https://b.com"},
		[][2]int{{0, 1}})

	sessionB := filepath.Join(dir, "b.db")
	buildSessionDB(t, sessionB,
		[]string{"https://b.com", "https://c.com"},
		[][2]int{{0, 1}})

	result, err := store.MergeSessions([]string{sessionA, sessionB})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SessionsMerged)
	assert.Equal(t, 2, result.NodesMerged, "b.com and c.com are new")
	assert.Equal(t, 2, result.NodesSkipped, "a.com and the second b.com collide")
	assert.Equal(t, 2, result.EdgesMerged)

	nodes, err := store.NodeCount()
	require.NoError(t, err)
	assert.Equal(t, 3, nodes)

	// The a.com -> b.com edge must hang off the pre-existing node id.
	urls, err := store.NodeURLs()
	require.NoError(t, err)
	assert.Equal(t, existing, urls["https://a.com"])

	var count int
	err = store.db.QueryRow(
		"SELECT COUNT(*) FROM edges WHERE source_id = ?", existing,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMergeSessions_Idempotent(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()

	session := filepath.Join(dir, "s.db")
	buildSessionDB(t, session,
		[]string{"https://a.com", "https://b.com"},
		[][2]int{{0, 1}})

	first, err := store.MergeSessions([]string{session})
	require.NoError(t, err)
	assert.Equal(t, 2, first.NodesMerged)
	assert.Equal(t, 1, first.EdgesMerged)

	second, err := store.MergeSessions([]string{session})
	require.NoError(t, err)
	assert.Equal(t, 0, second.NodesMerged)
	assert.Equal(t, 0, second.EdgesMerged)
	assert.Equal(t, 2, second.NodesSkipped)

	nodes, err := store.NodeCount()
	require.NoError(t, err)
	assert.Equal(t, 2, nodes)
	edges, err := store.EdgeCount()
	require.NoError(t, err)
	assert.Equal(t, 1, edges)
}

func TestMergeSessions_SharedURLAcrossSources(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()

	// The same URL appears in both sources; the second must dedupe against
	// what the first merged in, not just the pre-merge graph.
	sessionA := filepath.Join(dir, "a.db")
	buildSessionDB(t, sessionA, []string{"https://shared.com"}, nil)
	sessionB := filepath.Join(dir, "b.db")
	buildSessionDB(t, sessionB, []string{"https://shared.com"}, nil)

	result, err := store.MergeSessions([]string{sessionA, sessionB})
	require.NoError(t, err)
	assert.Equal(t, 1, result.NodesMerged)
	assert.Equal(t, 1, result.NodesSkipped)

	nodes, err := store.NodeCount()
	require.NoError(t, err)
	assert.Equal(t, 1, nodes)
}

func TestMergeSessions_UnreadableSourceSkipped(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()

	session := filepath.Join(dir, "good.db")
	buildSessionDB(t, session, []string{"https://a.com"}, nil)

	result, err := store.MergeSessions([]string{
		filepath.Join(dir, "missing.db"),
		session,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SessionsMerged, "only the readable source counts")
	assert.Equal(t, 1, result.NodesMerged)
}
