package invoicepdf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveAndRead(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save([]byte("document"), "C1", 2025, "C1-2025-10")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("2025", "C1", "C1-2025-10.pdf"), mustRel(t, store.dir, path))

	data, ok, err := store.Read("C1", 2025, "C1-2025-10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("document"), data)
}

func TestStoreReadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	data, ok, err := store.Read("C1", 2025, "C1-2025-10")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Save([]byte("first"), "C1", 2025, "C1-2025-10")
	require.NoError(t, err)
	_, err = store.Save([]byte("second"), "C1", 2025, "C1-2025-10")
	require.NoError(t, err)

	data, ok, err := store.Read("C1", 2025, "C1-2025-10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), data)
}

func mustRel(t *testing.T, base, target string) string {
	t.Helper()
	rel, err := filepath.Rel(base, target)
	require.NoError(t, err)
	return rel
}
