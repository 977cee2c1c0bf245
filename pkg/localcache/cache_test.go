package localcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSet(t *testing.T) {
	cache, err := Open("")
	require.NoError(t, err)
	defer cache.Close()

	_, found, err := cache.Get("missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set("prefs:stock-symbols", []byte(`["QDEL"]`)))

	value, found, err := cache.Get("prefs:stock-symbols")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`["QDEL"]`), value)

	// Overwrite
	require.NoError(t, cache.Set("prefs:stock-symbols", []byte(`["AAPL"]`)))
	value, _, err = cache.Get("prefs:stock-symbols")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["AAPL"]`), value)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	cache, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Set("k", []byte("v")))
	require.NoError(t, cache.Close())

	cache, err = Open(dir)
	require.NoError(t, err)
	defer cache.Close()

	value, found, err := cache.Get("k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("v"), value)
}
