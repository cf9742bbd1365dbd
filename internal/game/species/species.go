package species

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownSpecies is returned when a species number is not in the catalog.
var ErrUnknownSpecies = errors.New("unknown species")

// Species is the immutable descriptive template shared by all creatures of one kind.
type Species struct {
	ID         int    `yaml:"id"`
	Name       string `yaml:"name"`
	Type       Type   `yaml:"type"`
	BaseHealth int    `yaml:"hp"`
	ImageURL   string `yaml:"image"`
}

// Validate checks that the species satisfies basic invariants.
//
// Precondition: s must not be nil.
// Postcondition: Returns nil iff ID >= 1, Name is non-empty, and BaseHealth >= 1.
func (s *Species) Validate() error {
	if s.ID < 1 {
		return fmt.Errorf("species: id must be >= 1, got %d", s.ID)
	}
	if s.Name == "" {
		return fmt.Errorf("species %d: name must not be empty", s.ID)
	}
	if s.BaseHealth < 1 {
		return fmt.Errorf("species %d (%s): hp must be >= 1", s.ID, s.Name)
	}
	return nil
}

// Catalog is a read-only lookup of species keyed by species number.
// Iteration order is ascending species number.
type Catalog struct {
	byID  map[int]*Species
	order []*Species
}

// NewCatalog builds a Catalog from the given species.
// When several entries share a species number the first one wins; alternate
// forms listed after the base form are dropped.
//
// Precondition: every element of list must be non-nil.
// Postcondition: Returns a Catalog ordered by ID, or the first validation error.
func NewCatalog(list []*Species) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]*Species, len(list))}
	for _, s := range list {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[s.ID]; exists {
			continue
		}
		cp := *s
		c.byID[s.ID] = &cp
		c.order = append(c.order, &cp)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i].ID < c.order[j].ID })
	return c, nil
}

// Get returns the species with the given number.
//
// Postcondition: Returns the Species, or an error wrapping ErrUnknownSpecies.
func (c *Catalog) Get(id int) (*Species, error) {
	s, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpecies, id)
	}
	return s, nil
}

// All returns every species in ascending ID order.
func (c *Catalog) All() []*Species {
	out := make([]*Species, len(c.order))
	copy(out, c.order)
	return out
}

// ByType returns the species of type t in ascending ID order.
func (c *Catalog) ByType(t Type) []*Species {
	var out []*Species
	for _, s := range c.order {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of species in the catalog.
func (c *Catalog) Len() int { return len(c.order) }

type catalogFile struct {
	Species []*Species `yaml:"species"`
}

// LoadCatalogFromBytes parses a species catalog from raw YAML bytes.
//
// Precondition: data must be a YAML document with a top-level "species" list.
// Postcondition: Returns a validated, non-empty Catalog or an error.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if len(f.Species) == 0 {
		return nil, errors.New("species catalog is empty")
	}
	for i, s := range f.Species {
		if s == nil {
			return nil, fmt.Errorf("species entry %d is empty", i)
		}
	}
	return NewCatalog(f.Species)
}

// LoadCatalog reads the species catalog file at path.
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns a validated Catalog or an error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}
	cat, err := LoadCatalogFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return cat, nil
}
