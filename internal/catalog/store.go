package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var ErrProductNotFound = errors.New("product not found")

//go:embed products.json
var seedData []byte

// Store holds the product catalog. Reads are served from memory; the admin
// product edit is the only write path and rewrites the backing file
// atomically. When no file exists yet the embedded seed catalog is used.
type Store struct {
	mu       sync.RWMutex
	path     string
	products []Product
}

func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = seedData
	}

	if err := json.Unmarshal(data, &s.products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return s, nil
}

func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) GetByID(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// Update replaces the catalog entry with the same id and persists the whole
// catalog. The id itself is immutable.
func (s *Store) Update(updated Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.ID == updated.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Product{}, ErrProductNotFound
	}

	previous := s.products[idx]
	s.products[idx] = updated
	if err := s.persist(); err != nil {
		s.products[idx] = previous
		return Product{}, err
	}

	return updated, nil
}

// persist writes to a temp file and renames it over the catalog file so a
// crashed write never truncates the store. Callers must hold the write lock.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.products, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "products-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp catalog file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace catalog file: %w", err)
	}
	return nil
}
