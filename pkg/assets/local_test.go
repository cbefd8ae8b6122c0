package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	store, err := NewLocalStore(dir, "http://localhost:9090/uploads/")
	require.NoError(t, err)

	url, err := store.Put(t.Context(), "user-1/img-1700000000000.jpeg", []byte("payload"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/uploads/user-1/img-1700000000000.jpeg", url)

	written, err := os.ReadFile(filepath.Join(dir, "user-1", "img-1700000000000.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), written)
}

func TestLocalStore_Put_Overwrite(t *testing.T) {
	t.Parallel()

	store, err := NewLocalStore(t.TempDir(), "http://localhost:9090/uploads")
	require.NoError(t, err)

	_, err = store.Put(t.Context(), "user-1/img-1.jpeg", []byte("first"), "image/jpeg")
	require.NoError(t, err)

	// Same derived key writes twice without error.
	url, err := store.Put(t.Context(), "user-1/img-1.jpeg", []byte("second"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/uploads/user-1/img-1.jpeg", url)
}
