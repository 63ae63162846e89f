package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lshigami/redaction/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_BasicOps(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")
	s, err := New(root)
	require.NoError(t, err)
	ctx := context.Background()

	path := storage.Path(storage.TasksNamespace, "1700000000_abcdefgh.png")

	ok, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, storage.TasksNamespace, "1700000000_abcdefgh.png", strings.NewReader("png bytes"), "image/png"))

	data, err := os.ReadFile(filepath.Join(root, "tasks", "1700000000_abcdefgh.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))

	ok, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, path))
	ok, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx, path), "deleting a missing file is a no-op")
}

func TestStore_RejectsEscapingPaths(t *testing.T) {
	root := t.TempDir()
	s, err := New(filepath.Join(root, "public"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret"), []byte("x"), 0o644))
	ctx := context.Background()

	ok, err := s.Exists(ctx, "../secret")
	require.NoError(t, err)
	assert.False(t, ok, "parent traversal is clamped to the root")

	assert.Error(t, s.Delete(ctx, ""))
	assert.FileExists(t, filepath.Join(root, "secret"))
}

func TestNew_RequiresRoot(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
