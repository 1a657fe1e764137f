// Package catalog holds the immutable table of repositories deploygen knows how to
// generate deployment artifacts for.
//
// A Catalog is built once at process start (Builtin, optionally merged with a YAML
// overlay from LoadFile) and passed explicitly to the generator. Records are handed
// out by value with copied slices, so nothing outside this package can mutate it.
package catalog

import (
	"errors"
	"fmt"

	derrors "github.com/tiation/deploygen/internal/errors"
)

// ErrNotFound is wrapped by Lookup when a key is not present in the catalog.
var ErrNotFound = errors.New("repository not found in catalog")

// RepositoryConfig describes one repository the generator can target.
type RepositoryConfig struct {
	Key           string   `yaml:"key"`
	Name          string   `yaml:"name"`
	Domain        string   `yaml:"domain"`
	Description   string   `yaml:"description"`
	Type          string   `yaml:"type"`
	Features      []string `yaml:"features"`
	APIEndpoints  []string `yaml:"api_endpoints"`
	CSPAdditional string   `yaml:"csp_additional"`
}

func (r RepositoryConfig) clone() RepositoryConfig {
	r.Features = append([]string(nil), r.Features...)
	r.APIEndpoints = append([]string(nil), r.APIEndpoints...)
	return r
}

// Catalog is an ordered, read-only set of repository records.
type Catalog struct {
	order   []string
	records map[string]RepositoryConfig
}

// New builds a catalog from records in the given order. Duplicate keys are rejected.
func New(records []RepositoryConfig) (*Catalog, error) {
	c := &Catalog{records: make(map[string]RepositoryConfig, len(records))}
	for _, r := range records {
		if r.Key == "" {
			return nil, derrors.ValidationFailed("key", "repository key is empty")
		}
		if _, dup := c.records[r.Key]; dup {
			return nil, derrors.ValidationFailed("key", fmt.Sprintf("duplicate repository key %q", r.Key))
		}
		c.order = append(c.order, r.Key)
		c.records[r.Key] = r.clone()
	}
	return c, nil
}

// Lookup returns the record for key. The match is exact and case-sensitive.
func (c *Catalog) Lookup(key string) (RepositoryConfig, error) {
	r, ok := c.records[key]
	if !ok {
		return RepositoryConfig{}, derrors.RepositoryNotFound(key, ErrNotFound)
	}
	return r.clone(), nil
}

// Has reports whether key is present.
func (c *Catalog) Has(key string) bool {
	_, ok := c.records[key]
	return ok
}

// Keys returns the catalog keys in declaration order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// All returns copies of every record in declaration order.
func (c *Catalog) All() []RepositoryConfig {
	out := make([]RepositoryConfig, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.records[k].clone())
	}
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.order) }

// Merge returns a new catalog where records from other replace same-key records in
// place and unseen keys are appended in other's order. Neither input is modified.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := &Catalog{
		order:   append([]string(nil), c.order...),
		records: make(map[string]RepositoryConfig, len(c.records)+other.Len()),
	}
	for k, r := range c.records {
		merged.records[k] = r
	}
	for _, k := range other.order {
		if _, exists := merged.records[k]; !exists {
			merged.order = append(merged.order, k)
		}
		merged.records[k] = other.records[k].clone()
	}
	return merged
}
