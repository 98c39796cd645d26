package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedData []byte

var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")
)

type document struct {
	Version   int         `yaml:"version"`
	Materials []*Material `yaml:"materials"`
	Systems   []*System   `yaml:"systems"`
	Assets    []*Asset    `yaml:"assets"`
	Bases     []*Base     `yaml:"bases"`
	Scenarios []*Scenario `yaml:"scenarios"`
}

// Load builds the catalog from the embedded seed plus any overlay files.
// Overlays may only add entries; an id colliding with an earlier source is
// an error so divergent copies of the same fact cannot coexist.
func Load(overlayPaths ...string) (*Catalog, error) {
	c := &Catalog{
		materialsByID: make(map[string]*Material),
		systemsByID:   make(map[string]*System),
		assetsByID:    make(map[string]*Asset),
		basesByID:     make(map[string]*Base),
		scenariosByID: make(map[string]*Scenario),
	}

	if err := c.merge(seedData, "seed"); err != nil {
		return nil, err
	}

	for _, path := range overlayPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog overlay: %w", err)
		}
		if err := c.merge(data, path); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Catalog) merge(data []byte, source string) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", source, err)
	}
	if doc.Version != 1 {
		return fmt.Errorf("catalog %s: unsupported version: %d", source, doc.Version)
	}

	for _, m := range doc.Materials {
		if _, exists := c.materialsByID[m.ID]; exists {
			return fmt.Errorf("catalog %s: material %q: %w", source, m.ID, ErrDuplicateID)
		}
		c.materialsByID[m.ID] = m
		c.Materials = append(c.Materials, m)
	}
	for _, s := range doc.Systems {
		if _, exists := c.systemsByID[s.ID]; exists {
			return fmt.Errorf("catalog %s: system %q: %w", source, s.ID, ErrDuplicateID)
		}
		c.systemsByID[s.ID] = s
		c.Systems = append(c.Systems, s)
	}
	for _, a := range doc.Assets {
		if _, exists := c.assetsByID[a.ID]; exists {
			return fmt.Errorf("catalog %s: asset %q: %w", source, a.ID, ErrDuplicateID)
		}
		c.assetsByID[a.ID] = a
		c.Assets = append(c.Assets, a)
	}
	for _, b := range doc.Bases {
		if _, exists := c.basesByID[b.ID]; exists {
			return fmt.Errorf("catalog %s: base %q: %w", source, b.ID, ErrDuplicateID)
		}
		c.basesByID[b.ID] = b
		c.Bases = append(c.Bases, b)
	}
	for _, s := range doc.Scenarios {
		if _, exists := c.scenariosByID[s.ID]; exists {
			return fmt.Errorf("catalog %s: scenario %q: %w", source, s.ID, ErrDuplicateID)
		}
		c.scenariosByID[s.ID] = s
		c.Scenarios = append(c.Scenarios, s)
	}

	return nil
}

func (c *Catalog) Material(id string) (*Material, error) {
	m, ok := c.materialsByID[id]
	if !ok {
		return nil, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	return m, nil
}

func (c *Catalog) System(id string) (*System, error) {
	s, ok := c.systemsByID[id]
	if !ok {
		return nil, fmt.Errorf("system %q: %w", id, ErrNotFound)
	}
	return s, nil
}

func (c *Catalog) Asset(id string) (*Asset, error) {
	a, ok := c.assetsByID[id]
	if !ok {
		return nil, fmt.Errorf("asset %q: %w", id, ErrNotFound)
	}
	return a, nil
}

func (c *Catalog) Base(id string) (*Base, error) {
	b, ok := c.basesByID[id]
	if !ok {
		return nil, fmt.Errorf("base %q: %w", id, ErrNotFound)
	}
	return b, nil
}

func (c *Catalog) Scenario(id string) (*Scenario, error) {
	s, ok := c.scenariosByID[id]
	if !ok {
		return nil, fmt.Errorf("scenario %q: %w", id, ErrNotFound)
	}
	return s, nil
}
