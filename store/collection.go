// Package store persists entities as one JSON array file per entity type,
// mirroring the serialized mapper output of each model. Every operation is a
// full read-modify-write of the backing file, serialized by a per-collection
// mutex; writes go through a temp file and rename so a crash mid-write never
// corrupts the previous state.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

var ErrDuplicateID = errors.New("an entity with this identifier already exists")

// Collection is a generic JSON-array-file backed set of entities keyed by a
// caller-supplied identifier function.
type Collection[T any] struct {
	path string
	id   func(T) string

	mu sync.Mutex
}

func NewCollection[T any](path string, id func(T) string) *Collection[T] {
	return &Collection[T]{path: path, id: id}
}

// All returns every stored entity. A missing or empty file is an empty
// collection, not an error; a corrupted file is.
func (c *Collection[T]) All() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load()
}

// Find returns the entity with the given identifier. Absence is reported
// through the boolean, not as an error.
func (c *Collection[T]) Find(id string) (T, bool, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if c.id(item) == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

func (c *Collection[T]) Create(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	for _, existing := range items {
		if c.id(existing) == c.id(item) {
			return ErrDuplicateID
		}
	}
	return c.save(append(items, item))
}

// Update replaces the stored entity with the same identifier. Returns false
// when no such entity exists.
func (c *Collection[T]) Update(item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return false, err
	}
	for i, existing := range items {
		if c.id(existing) == c.id(item) {
			items[i] = item
			return true, c.save(items)
		}
	}
	return false, nil
}

func (c *Collection[T]) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return false, err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if c.id(item) != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, c.save(kept)
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Collection[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
