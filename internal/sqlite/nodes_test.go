// Unit tests for node storage: identity, URL uniqueness, crawl updates, and
// deletion cascade.
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/voidgraph/pkg/types"
)

// setupStore opens a fresh graph database in a temp directory.
func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "graph.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateNode(t *testing.T) {
	store := setupStore(t)

	id, err := store.CreateNode("https://example.com", "Example", 1, 2, 3)
	require.NoError(t, err)

	node, err := store.GetNode(id)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", node.URL)
	assert.Equal(t, "Example", node.Title)
	assert.Equal(t, 1.0, node.PositionX)
	assert.Equal(t, 2.0, node.PositionY)
	assert.Equal(t, 3.0, node.PositionZ)
	assert.True(t, node.IsAlive)
	assert.Nil(t, node.LastCrawled)
	assert.NotEmpty(t, node.CreatedAt)
}

func TestCreateNode_EmptyTitleDefaults(t *testing.T) {
	store := setupStore(t)

	id, err := store.CreateNode("https://example.com", "", 0, 0, 0)
	require.NoError(t, err)

	node, err := store.GetNode(id)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTitle, node.Title)
}

func TestCreateNode_DuplicateURL(t *testing.T) {
	store := setupStore(t)

	_, err := store.CreateNode("https://example.com", "first", 0, 0, 0)
	require.NoError(t, err)

	_, err = store.CreateNode("https://example.com", "second", 0, 0, 0)
	assert.ErrorIs(t, err, types.ErrDuplicateURL)
}

func TestCreateNode_URLComparisonIsCaseSensitive(t *testing.T) {
	store := setupStore(t)

	_, err := store.CreateNode("https://Example.com/Page", "", 0, 0, 0)
	require.NoError(t, err)

	// Differs only in case, so it is a distinct node.
	_, err = store.CreateNode("https://example.com/page", "", 0, 0, 0)
	require.NoError(t, err)

	count, err := store.NodeCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertNodeIfAbsent(t *testing.T) {
	store := setupStore(t)

	id1, created, err := store.InsertNodeIfAbsent(types.Node{
		URL: "https://example.com", Title: "Example", IsAlive: true,
	})
	require.NoError(t, err)
	assert.True(t, created)

	id2, created, err := store.InsertNodeIfAbsent(types.Node{
		URL: "https://example.com", Title: "Other", IsAlive: true,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	// The losing insert must not overwrite the first node's metadata.
	node, err := store.GetNode(id1)
	require.NoError(t, err)
	assert.Equal(t, "Example", node.Title)
}

func TestGetNode_NotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetNode(42)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateNodeCrawl_CoalescesNilFields(t *testing.T) {
	store := setupStore(t)

	id, err := store.CreateNode("https://example.com", "Original", 0, 0, 0)
	require.NoError(t, err)

	favicon := "https://example.com/favicon.ico"
	require.NoError(t, store.UpdateNodeCrawl(id, nil, &favicon, true))

	node, err := store.GetNode(id)
	require.NoError(t, err)
	assert.Equal(t, "Original", node.Title, "nil title should preserve the stored one")
	require.NotNil(t, node.Favicon)
	assert.Equal(t, favicon, *node.Favicon)
	assert.True(t, node.IsAlive)
	assert.NotNil(t, node.LastCrawled, "crawl timestamp should always be stamped")
}

func TestMarkNodeDead(t *testing.T) {
	store := setupStore(t)

	id, err := store.CreateNode("https://example.com", "", 0, 0, 0)
	require.NoError(t, err)

	require.NoError(t, store.MarkNodeDead(id))

	node, err := store.GetNode(id)
	require.NoError(t, err)
	assert.False(t, node.IsAlive)
	assert.NotNil(t, node.LastCrawled)
}

func TestDeleteNode_CascadesEdges(t *testing.T) {
	store := setupStore(t)

	a, err := store.CreateNode("https://a.com", "", 0, 0, 0)
	require.NoError(t, err)
	b, err := store.CreateNode("https://b.com", "", 0, 0, 0)
	require.NoError(t, err)
	c, err := store.CreateNode("https://c.com", "", 0, 0, 0)
	require.NoError(t, err)

	for _, pair := range [][2]int64{{a, b}, {b, c}, {c, a}} {
		_, err := store.CreateEdge(pair[0], pair[1])
		require.NoError(t, err)
	}

	require.NoError(t, store.DeleteNode(b))

	nodes, err := store.NodeCount()
	require.NoError(t, err)
	assert.Equal(t, 2, nodes)

	// Both edges touching b are gone; c->a survives.
	edges, err := store.EdgeCount()
	require.NoError(t, err)
	assert.Equal(t, 1, edges)
}

func TestDeleteNode_AbsentIsNoOp(t *testing.T) {
	store := setupStore(t)

	require.NoError(t, store.DeleteNode(99))
	require.NoError(t, store.DeleteNode(99))
}

func TestRandomAliveNode(t *testing.T) {
	store := setupStore(t)

	_, err := store.RandomAliveNode()
	assert.ErrorIs(t, err, types.ErrNotFound)

	alive, err := store.CreateNode("https://alive.com", "", 0, 0, 0)
	require.NoError(t, err)
	dead, err := store.CreateNode("https://dead.com", "", 0, 0, 0)
	require.NoError(t, err)
	require.NoError(t, store.MarkNodeDead(dead))

	for i := 0; i < 10; i++ {
		node, err := store.RandomAliveNode()
		require.NoError(t, err)
		assert.Equal(t, alive, node.ID)
	}
}
