// Package catalog holds the fixed, ordered set of bond instruments the picker
// searches. A Catalog is built once and never mutated; every accessor returns
// copies so callers cannot alias its backing storage.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed bonds.yaml
var embeddedBonds []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Catalog is an immutable, ordered sequence of instruments indexed by ID.
type Catalog struct {
	instruments []Instrument
	byID        map[string]int
}

// New validates instruments and returns a catalog preserving their order.
func New(instruments []Instrument) (*Catalog, error) {
	if err := Validate(instruments); err != nil {
		return nil, err
	}
	return build(instruments), nil
}

func build(instruments []Instrument) *Catalog {
	c := &Catalog{
		instruments: append([]Instrument(nil), instruments...),
		byID:        make(map[string]int, len(instruments)),
	}
	for i, in := range c.instruments {
		c.byID[in.ID] = i
	}
	return c
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embeddedBonds, FormatYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// EmbeddedYAML returns a copy of the compiled-in catalog document.
func EmbeddedYAML() []byte {
	return append([]byte(nil), embeddedBonds...)
}

// Len returns the number of instruments.
func (c *Catalog) Len() int {
	return len(c.instruments)
}

// At returns the instrument at position i in catalog order.
func (c *Catalog) At(i int) Instrument {
	return c.instruments[i]
}

// All returns every instrument in catalog order.
func (c *Catalog) All() []Instrument {
	return append([]Instrument(nil), c.instruments...)
}

// ByID looks up an instrument by its identifier.
func (c *Catalog) ByID(id string) (Instrument, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Instrument{}, false
	}
	return c.instruments[i], true
}

// FirstByDescription returns the first instrument, in catalog order, whose
// description equals desc exactly. The comparison is case-sensitive.
func (c *Catalog) FirstByDescription(desc string) (Instrument, bool) {
	for _, in := range c.instruments {
		if in.Description == desc {
			return in, true
		}
	}
	return Instrument{}, false
}

// Where returns a new catalog holding the instruments keep accepts, in order.
// The receiver is left untouched.
func (c *Catalog) Where(keep func(Instrument) bool) *Catalog {
	out := make([]Instrument, 0, len(c.instruments))
	for _, in := range c.instruments {
		if keep(in) {
			out = append(out, in)
		}
	}
	return build(out)
}

// String returns a short debug representation.
func (c *Catalog) String() string {
	return fmt.Sprintf("Catalog[instruments=%d]", len(c.instruments))
}
