package api

import (
	"github.com/teranos/dojodts/errors"
)

// Collection is an insertion-ordered set of entities keyed by location.
// Iteration order is the order of the source document's keys.
type Collection struct {
	keys     []string
	entities map[string]*Entity
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{entities: make(map[string]*Entity)}
}

// Add appends an entity under path. Empty and duplicate paths are rejected.
func (c *Collection) Add(path string, e *Entity) error {
	if path == "" {
		return errors.Newk(errors.ErrInvalidInput, "entity with empty location")
	}
	if e == nil {
		return errors.Newk(errors.ErrInvalidInput, "nil entity for %s", path)
	}
	if _, exists := c.entities[path]; exists {
		return errors.Newk(errors.ErrInvalidInput, "duplicate entity location %s", path)
	}
	c.keys = append(c.keys, path)
	c.entities[path] = e
	return nil
}

// Get returns the entity stored under path, or nil.
func (c *Collection) Get(path string) *Entity {
	if c == nil {
		return nil
	}
	return c.entities[path]
}

// Keys returns the paths in insertion order. The slice is a copy.
func (c *Collection) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of entities
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Each calls fn for every entity in order until fn returns false.
func (c *Collection) Each(fn func(path string, e *Entity) bool) {
	if c == nil {
		return
	}
	for _, k := range c.keys {
		if !fn(k, c.entities[k]) {
			return
		}
	}
}

// Filter returns the sub-collection of entities whose path satisfies keep,
// preserving order. Entities are shared, not copied.
func (c *Collection) Filter(keep func(path string) bool) *Collection {
	out := NewCollection()
	c.Each(func(path string, e *Entity) bool {
		if keep(path) {
			out.keys = append(out.keys, path)
			out.entities[path] = e
		}
		return true
	})
	return out
}
