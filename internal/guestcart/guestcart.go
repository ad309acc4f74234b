// Package guestcart keeps an anonymous cart on the client side, in the same
// {itemId, qty} line shape the server uses, for visitors without a session.
//
// Signing in does not merge the guest cart into the account cart; the two
// are independent until a client decides otherwise.
package guestcart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/cart/entity"
	catalogentity "github.com/ovaphlow/pitchfork/service-shop-go/internal/catalog/entity"
)

// StorageKey names the persisted document, matching the browser client.
const StorageKey = "localCart"

// Storage persists the raw cart document. Load returns nil data when
// nothing has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStorage keeps the document at <dir>/localCart.json.
type FileStorage struct {
	path string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, StorageKey+".json")}
}

func (s *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// MemoryStorage is a Storage held in process memory.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func (s *MemoryStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.data), nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = bytes.Clone(data)
	return nil
}

// Cart is a guest cart backed by a Storage.
type Cart struct {
	storage Storage
}

func New(storage Storage) *Cart {
	return &Cart{storage: storage}
}

// Lines returns the stored lines. A missing, empty or corrupt document
// reads as an empty cart.
func (c *Cart) Lines() (entity.Lines, error) {
	data, err := c.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("load guest cart: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return entity.Lines{}, nil
	}
	var lines entity.Lines
	if err := json.Unmarshal(data, &lines); err != nil || lines == nil {
		return entity.Lines{}, nil
	}
	return lines, nil
}

func (c *Cart) save(lines entity.Lines) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := c.storage.Save(data); err != nil {
		return fmt.Errorf("save guest cart: %w", err)
	}
	return nil
}

// Add increments the line for itemID, appending it when absent.
func (c *Cart) Add(itemID string, qty int) (entity.Lines, error) {
	lines, err := c.Lines()
	if err != nil {
		return nil, err
	}
	lines = lines.Add(itemID, qty)
	return lines, c.save(lines)
}

// Remove drops the line for itemID; an absent line is a no-op.
func (c *Cart) Remove(itemID string) (entity.Lines, error) {
	lines, err := c.Lines()
	if err != nil {
		return nil, err
	}
	lines, changed := lines.Remove(itemID)
	if !changed {
		return lines, nil
	}
	return lines, c.save(lines)
}

func (c *Cart) Clear() error {
	return c.save(entity.Lines{})
}

// Count is the number of units in the cart.
func (c *Cart) Count() (int, error) {
	lines, err := c.Lines()
	if err != nil {
		return 0, err
	}
	return lines.Count(), nil
}

// Expand joins the guest lines against a catalog listing the same way the
// server expands account carts.
func (c *Cart) Expand(items []catalogentity.Item) (*cart.ExpandedCart, error) {
	lines, err := c.Lines()
	if err != nil {
		return nil, err
	}
	expanded, total := cart.ExpandLines(lines, cart.LookupFromItems(items))
	return &cart.ExpandedCart{Items: expanded, Total: total}, nil
}
