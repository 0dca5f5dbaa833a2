// Package abcloader implements the AbcLoader capability ABCT scripts use to
// resolve backtick-quoted file paths into parsed ABC trees, with an
// in-process LRU cache so re-loading an already-seen absolute path during
// one evaluation does not re-parse it (spec §5 resource policy).
package abcloader

import (
	"errors"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcparse"
	"github.com/abc-lang/abcls/internal/source"
)

// ErrFileNotFound is returned when a referenced path does not exist.
var ErrFileNotFound = errors.New("abcloader: file not found")

// ErrIO wraps an underlying filesystem error other than not-found.
var ErrIO = errors.New("abcloader: io error")

// Loader resolves a path to a parsed ABC tree.
type Loader interface {
	Load(path string) (*abcast.Tree, error)
}

// Memory is an in-memory Loader, used by tests and by the evaluator when a
// script is run against an already-loaded in-memory document rather than
// the filesystem.
type Memory struct {
	Files map[string]string
}

func (m *Memory) Load(path string) (*abcast.Tree, error) {
	src, ok := m.Files[path]
	if !ok {
		return nil, ErrFileNotFound
	}
	ctx := source.New(src)
	return abcparse.Parse(ctx), nil
}

// FS is a filesystem-backed Loader rooted at BaseDir (the directory given to
// NewFS; cmd/abctrun passes the script's own directory), with an LRU cache
// keyed by resolved absolute path
// so repeated references within one evaluation reuse the same parsed tree
// (spec §8 property 11).
type FS struct {
	BaseDir string
	cache   *lru.Cache[string, *abcast.Tree]
}

// NewFS creates an FS loader with a cache holding up to capacity entries.
func NewFS(baseDir string, capacity int) (*FS, error) {
	c, err := lru.New[string, *abcast.Tree](capacity)
	if err != nil {
		return nil, err
	}
	return &FS{BaseDir: baseDir, cache: c}, nil
}

func (f *FS) Load(path string) (*abcast.Tree, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(f.BaseDir, path)
	}
	abs = filepath.Clean(abs)

	if tree, ok := f.cache.Get(abs); ok {
		return tree, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, errors.Join(ErrIO, err)
	}

	ctx := source.New(string(data))
	tree := abcparse.Parse(ctx)
	f.cache.Add(abs, tree)
	return tree, nil
}
