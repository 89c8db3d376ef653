package fragments

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed assets.yaml
var assetsYAML []byte

// Override replaces descriptor fields for granules produced at or after Effective (YYYYDDD)
type Override struct {
	Effective int                    `yaml:"effective"`
	Title     string                 `yaml:"title"`
	Roles     []string               `yaml:"roles"`
	Fields    map[string]interface{} `yaml:"fields"`
}

// Descriptor holds the static fields of one exported subdataset's asset
type Descriptor struct {
	Title     string                 `yaml:"title"`
	Roles     []string               `yaml:"roles"`
	Fields    map[string]interface{} `yaml:"fields"`
	Overrides []Override             `yaml:"overrides"`
}

// Catalog is keyed by product, then by sanitized subdataset name (with a _fill suffix for fill rasters)
type Catalog map[string]map[string]Descriptor

// Parse reads a catalog from YAML
func Parse(data []byte) (Catalog, error) {
	catalog := Catalog{}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse asset fragments: %w", err)
	}
	return catalog, nil
}

// Load reads the catalog built into the binary
func Load() (Catalog, error) {
	return Parse(assetsYAML)
}

// Lookup returns the descriptor of a subdataset with every override effective at
// productionJulianDate applied, oldest first. The catalog is not modified.
func (c Catalog) Lookup(product, subdataset string, productionJulianDate int) (Descriptor, bool) {
	base, ok := c[product][subdataset]
	if !ok {
		return Descriptor{}, false
	}

	resolved := Descriptor{Title: base.Title, Roles: append([]string(nil), base.Roles...), Fields: map[string]interface{}{}}
	for k, v := range base.Fields {
		resolved.Fields[k] = v
	}

	overrides := append([]Override(nil), base.Overrides...)
	sort.SliceStable(overrides, func(i, j int) bool { return overrides[i].Effective < overrides[j].Effective })
	for _, override := range overrides {
		if productionJulianDate < override.Effective {
			break
		}
		if override.Title != "" {
			resolved.Title = override.Title
		}
		if len(override.Roles) > 0 {
			resolved.Roles = append([]string(nil), override.Roles...)
		}
		for k, v := range override.Fields {
			resolved.Fields[k] = v
		}
	}
	return resolved, true
}
