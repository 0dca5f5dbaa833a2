package abcloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoadReturnsParsedTree(t *testing.T) {
	m := &Memory{Files: map[string]string{"a.abc": "X:1\nK:C\nCDE|\n"}}
	tree, err := m.Load("a.abc")
	require.NoError(t, err)
	require.NotNil(t, tree.FileStructureNode())
}

func TestMemoryLoadMissingFileReturnsErrFileNotFound(t *testing.T) {
	m := &Memory{Files: map[string]string{}}
	_, err := m.Load("missing.abc")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFSLoadReadsAndCachesByAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tune.abc")
	require.NoError(t, os.WriteFile(path, []byte("X:1\nK:C\nCDE|\n"), 0o644))

	fs, err := NewFS(dir, 8)
	require.NoError(t, err)

	tree1, err := fs.Load("tune.abc")
	require.NoError(t, err)
	tree2, err := fs.Load("tune.abc")
	require.NoError(t, err)
	assert.Same(t, tree1, tree2, "second load should hit the cache and return the same tree")
}

func TestFSLoadMissingFileReturnsErrFileNotFound(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFS(dir, 8)
	require.NoError(t, err)
	_, err = fs.Load("nope.abc")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
