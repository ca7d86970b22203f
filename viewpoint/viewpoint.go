// Package viewpoint defines the catalog of named camera presets.
package viewpoint

import (
	"errors"
	"fmt"

	"github.com/ansipixels/twincam/math3d"
)

// Category groups viewpoints in the navigation UI.
type Category string

const (
	CategoryNone           Category = ""
	CategoryOverview       Category = "overview"
	CategoryEquipment      Category = "equipment"
	CategoryInfrastructure Category = "infrastructure"
	CategoryMonitoring     Category = "monitoring"
)

// Valid reports whether c is one of the known categories (or unset).
func (c Category) Valid() bool {
	switch c {
	case CategoryNone, CategoryOverview, CategoryEquipment, CategoryInfrastructure, CategoryMonitoring:
		return true
	}
	return false
}

var (
	ErrEmptyID         = errors.New("viewpoint id is empty")
	ErrDuplicateID     = errors.New("duplicate viewpoint id")
	ErrUnknownCategory = errors.New("unknown viewpoint category")
)

// Viewpoint is an immutable camera preset.
type Viewpoint struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Position    math3d.Vec3
	Target      math3d.Vec3
	Hotspot     *math3d.Vec3 // optional marker position
	Category    Category
}

// HasHotspot reports whether the viewpoint defines a marker position.
func (v Viewpoint) HasHotspot() bool {
	return v.Hotspot != nil
}

// clone returns v with its own copy of the hotspot.
func (v Viewpoint) clone() Viewpoint {
	if v.Hotspot != nil {
		h := *v.Hotspot
		v.Hotspot = &h
	}
	return v
}

// Catalog is an ordered, id-unique list of viewpoints. Order defines cyclic
// navigation. A Catalog is never mutated after construction; replacing the
// pointer is a full reconfiguration for its consumers.
type Catalog struct {
	items []Viewpoint
	index map[string]int
}

// NewCatalog validates and indexes the viewpoints.
func NewCatalog(vs ...Viewpoint) (*Catalog, error) {
	c := &Catalog{
		items: make([]Viewpoint, 0, len(vs)),
		index: make(map[string]int, len(vs)),
	}
	for i, v := range vs {
		if v.ID == "" {
			return nil, fmt.Errorf("viewpoint %d: %w", i, ErrEmptyID)
		}
		if _, dup := c.index[v.ID]; dup {
			return nil, fmt.Errorf("viewpoint %q: %w", v.ID, ErrDuplicateID)
		}
		if !v.Category.Valid() {
			return nil, fmt.Errorf("viewpoint %q category %q: %w", v.ID, v.Category, ErrUnknownCategory)
		}
		c.index[v.ID] = len(c.items)
		c.items = append(c.items, v.clone())
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables; it panics on invalid input.
func MustCatalog(vs ...Viewpoint) *Catalog {
	c, err := NewCatalog(vs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of viewpoints. Safe on a nil catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the viewpoint at index i.
func (c *Catalog) At(i int) (Viewpoint, bool) {
	if i < 0 || i >= c.Len() {
		return Viewpoint{}, false
	}
	return c.items[i].clone(), true
}

// Index returns the catalog position of id.
func (c *Catalog) Index(id string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[id]
	return i, ok
}

// Get returns the viewpoint with the given id.
func (c *Catalog) Get(id string) (Viewpoint, bool) {
	i, ok := c.Index(id)
	if !ok {
		return Viewpoint{}, false
	}
	return c.items[i].clone(), true
}

// All returns a copy of the viewpoints in catalog order.
func (c *Catalog) All() []Viewpoint {
	if c == nil {
		return nil
	}
	out := make([]Viewpoint, len(c.items))
	for i, v := range c.items {
		out[i] = v.clone()
	}
	return out
}

// Wrap maps any integer onto a valid index by modular arithmetic.
// It reports false for an empty catalog, where no index exists.
func (c *Catalog) Wrap(i int) (int, bool) {
	n := c.Len()
	if n == 0 {
		return 0, false
	}
	return ((i % n) + n) % n, true
}
