package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"greenpoints-backend/internal/model"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is the initialization dataset seeded into the database at startup.
type Catalog struct {
	Dorms       []string          `yaml:"dorms"`
	ActionTypes []ActionTypeEntry `yaml:"action_types"`
}

// ActionTypeEntry is one action type as written in the dataset file.
type ActionTypeEntry struct {
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	BasePoints     int64   `yaml:"base_points"`
	CarbonImpactKg float64 `yaml:"carbon_impact_kg"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate trims names and rejects blank or duplicate entries.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Dorms))
	for i, name := range c.Dorms {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("dorm %d: empty name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("dorm %q listed twice", name)
		}
		seen[name] = struct{}{}
		c.Dorms[i] = name
	}

	seen = make(map[string]struct{}, len(c.ActionTypes))
	for i := range c.ActionTypes {
		at := &c.ActionTypes[i]
		at.Name = strings.TrimSpace(at.Name)
		if at.Name == "" {
			return fmt.Errorf("action type %d: empty name", i)
		}
		if _, dup := seen[at.Name]; dup {
			return fmt.Errorf("action type %q listed twice", at.Name)
		}
		if at.BasePoints < 0 {
			return fmt.Errorf("action type %q: negative base_points", at.Name)
		}
		if at.CarbonImpactKg < 0 {
			return fmt.Errorf("action type %q: negative carbon_impact_kg", at.Name)
		}
		seen[at.Name] = struct{}{}
	}
	return nil
}

// DormModels converts the dorm names into rows ready for insertion.
func (c *Catalog) DormModels() []model.Dorm {
	dorms := make([]model.Dorm, 0, len(c.Dorms))
	for _, name := range c.Dorms {
		dorms = append(dorms, model.Dorm{Name: name})
	}
	return dorms
}

// ActionTypeModels converts the entries into rows ready for insertion.
func (c *Catalog) ActionTypeModels() []model.ActionType {
	types := make([]model.ActionType, 0, len(c.ActionTypes))
	for _, at := range c.ActionTypes {
		types = append(types, model.ActionType{
			Name:           at.Name,
			Description:    at.Description,
			BasePoints:     at.BasePoints,
			CarbonImpactKg: at.CarbonImpactKg,
		})
	}
	return types
}
