// Package storage implements the flat-file tables backing the service:
// products.json, snapshots.json and reports.json under a data directory, each
// holding a {nextId, items[]} document. Every operation loads the full
// document, mutates it in memory and rewrites the whole file; a store-wide
// mutex serializes these read-modify-write cycles so concurrent API calls
// cannot clobber each other's writes.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	productsFile  = "products.json"
	snapshotsFile = "snapshots.json"
	reportsFile   = "reports.json"

	dataDirPerm  = 0o755
	dataFilePerm = 0o644
)

// ErrDuplicateProductURL is returned when registering an already-known url.
var ErrDuplicateProductURL = errors.New("商品链接已存在")

// Store is the file-backed database.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

type table[T any] struct {
	NextID int `json:"nextId"`
	Items  []T `json:"items"`
}

// loadTable reads a table document. A missing or unreadable file yields the
// empty table, matching the lazily-created on-disk layout.
func loadTable[T any](s *Store, name string) table[T] {
	t := table[T]{NextID: 1}
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return t
	}
	if err := json.Unmarshal(raw, &t); err != nil {
		return table[T]{NextID: 1}
	}
	if t.NextID < 1 {
		t.NextID = 1
	}
	return t
}

func saveTable[T any](s *Store, name string, t table[T]) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
