package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Index is the set of document ids already saved under the output tree.
// It is rebuilt from disk on every run and only grows afterwards.
type Index struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{ids: make(map[string]struct{})}
}

// Scan walks root recursively and registers every saved document it finds.
// A missing root yields an empty index; unreadable entries and files that do
// not follow the naming convention are skipped.
func Scan(root string) (*Index, error) {
	idx := NewIndex()

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return idx, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if id, ok := ParseFilename(d.Name()); ok {
			idx.Add(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return idx, nil
}

// Has reports whether documentID is already saved
func (i *Index) Has(documentID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.ids[documentID]
	return ok
}

// Add registers documentID as saved
func (i *Index) Add(documentID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.ids[documentID] = struct{}{}
}

// Len returns the number of known documents
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.ids)
}
