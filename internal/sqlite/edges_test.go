// Unit tests for edge storage.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEdge_Idempotent(t *testing.T) {
	store := setupStore(t)

	a, err := store.CreateNode("https://a.com", "", 0, 0, 0)
	require.NoError(t, err)
	b, err := store.CreateNode("https://b.com", "", 0, 0, 0)
	require.NoError(t, err)

	created, err := store.CreateEdge(a, b)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreateEdge(a, b)
	require.NoError(t, err)
	assert.False(t, created, "repeated link should be a no-op")

	count, err := store.EdgeCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateEdge_DirectionMatters(t *testing.T) {
	store := setupStore(t)

	a, err := store.CreateNode("https://a.com", "", 0, 0, 0)
	require.NoError(t, err)
	b, err := store.CreateNode("https://b.com", "", 0, 0, 0)
	require.NoError(t, err)

	created, err := store.CreateEdge(a, b)
	require.NoError(t, err)
	assert.True(t, created)

	// The reverse direction is a distinct edge.
	created, err = store.CreateEdge(b, a)
	require.NoError(t, err)
	assert.True(t, created)

	count, err := store.EdgeCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
