package database

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// collection is an insertion-ordered list of records keyed by id.
// Records are copied on the way in and out so callers never share memory
// with the stored state.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(*T) string
	setID func(*T, string)
	clone func(T) T
}

func newCollection[T any](id func(*T) string, setID func(*T, string), clone func(T) T) *collection[T] {
	return &collection[T]{id: id, setID: setID, clone: clone}
}

func (c *collection[T]) list() []*T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*T, 0, len(c.items))
	for _, item := range c.items {
		cp := c.clone(item)
		out = append(out, &cp)
	}
	return out
}

func (c *collection[T]) find(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("record %s: %w", id, entity.ErrNotFound)
	}
	cp := c.clone(c.items[i])
	return &cp, nil
}

// insert always assigns a fresh id.
func (c *collection[T]) insert(record *T) *T {
	stored := c.clone(*record)
	c.setID(&stored, newID())

	c.mu.Lock()
	c.items = append(c.items, stored)
	c.mu.Unlock()

	out := c.clone(stored)
	return &out
}

// seed stores records as given, keeping their ids.
func (c *collection[T]) seed(records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		c.items = append(c.items, c.clone(r))
	}
}

// update applies fn to a copy of the record and stores the copy only when
// fn succeeds.
func (c *collection[T]) update(id string, fn func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("record %s: %w", id, entity.ErrNotFound)
	}

	working := c.clone(c.items[i])
	if err := fn(&working); err != nil {
		return nil, err
	}
	// the id is owned by the store
	c.setID(&working, id)
	c.items[i] = working

	out := c.clone(working)
	return &out, nil
}

// remove is idempotent: a missing id is not an error.
func (c *collection[T]) remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
}

func (c *collection[T]) count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) indexOf(id string) int {
	for i := range c.items {
		if c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

// newID returns a time-ordered UUID so ids sort by creation.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
