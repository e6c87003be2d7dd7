package filestore_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/filestore"
)

func TestLocal_StoreAndDelete(t *testing.T) {
	store, err := filestore.NewLocal(t.TempDir())
	require.NoError(t, err)

	meta, err := store.Store(context.Background(), "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)
	require.Equal(t, "report.pdf", meta.OriginalName)
	require.True(t, strings.HasSuffix(meta.Filename, ".pdf"))
	require.NotEqual(t, "report.pdf", meta.Filename)
	require.Equal(t, int64(7), meta.Size)

	data, err := os.ReadFile(meta.Path)
	require.NoError(t, err)
	require.Equal(t, "content", string(data))

	require.NoError(t, store.Delete(context.Background(), meta.Path))
	_, err = os.Stat(meta.Path)
	require.True(t, os.IsNotExist(err))

	// Deleting a missing file is not an error.
	require.NoError(t, store.Delete(context.Background(), meta.Path))
}

func TestLocal_CollidingOriginalNames(t *testing.T) {
	store, err := filestore.NewLocal(t.TempDir())
	require.NoError(t, err)

	first, err := store.Store(context.Background(), "same.txt", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Store(context.Background(), "same.txt", strings.NewReader("b"))
	require.NoError(t, err)
	require.NotEqual(t, first.Path, second.Path)
}
