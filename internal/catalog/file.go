package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a catalog from a YAML file, normalizes it, and reports any
// skipped rows. A missing path returns the built-in defaults.
func LoadFile(path string) (Catalog, []string, error) {
	if path == "" {
		c := Default()
		return c, nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c := Default()
			return c, nil, nil
		}
		return Catalog{}, nil, fmt.Errorf("read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, nil, fmt.Errorf("parse catalog: %w", err)
	}
	skipped := c.Normalize()
	return c, skipped, nil
}
