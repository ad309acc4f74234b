package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	CollectionUsers = "users"
	CollectionItems = "items"
	CollectionCarts = "carts"
)

// FileStore keeps every collection in a single JSON document on disk.
// Each operation reads the whole document, and writes replace it atomically
// through a temporary file and rename. Read-modify-write cycles issued
// through Update are serialized within the process.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// OpenFile opens (or creates) the document at path and makes sure each of
// the given collections exists as an array.
func OpenFile(path string, collections ...string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	s := &FileStore{path: path}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	changed := false
	for _, c := range collections {
		if _, ok := doc[c]; !ok {
			doc[c] = json.RawMessage("[]")
			changed = true
		}
	}
	if changed {
		if err := s.save(doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the location of the backing document.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	doc := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode store: %w", err)
	}
	return doc, nil
}

func (s *FileStore) save(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

func decodeCollection[T any](doc map[string]json.RawMessage, name string) ([]T, error) {
	raw, ok := doc[name]
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Read returns a snapshot of the named collection.
func Read[T any](ctx context.Context, s *FileStore, name string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return decodeCollection[T](doc, name)
}

// Update loads the named collection, passes it to fn and persists the slice
// fn returns. When fn returns an error, or reports no change, nothing is
// written.
func Update[T any](ctx context.Context, s *FileStore, name string, fn func(records []T) ([]T, bool, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	records, err := decodeCollection[T](doc, name)
	if err != nil {
		return err
	}
	next, changed, err := fn(records)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if next == nil {
		next = []T{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	doc[name] = raw
	return s.save(doc)
}
