package requirement

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region yaml-types
// catalogFile is the on-disk YAML shape for a catalogue override.
type catalogFile struct {
	Domain       string        `yaml:"domain"`
	Requirements []catalogItem `yaml:"requirements"`
}

type catalogItem struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	Article          string   `yaml:"article"`
	Priority         string   `yaml:"priority"`
	Category         string   `yaml:"category"`
	Subcategory      string   `yaml:"subcategory"`
	Metrics          []string `yaml:"metrics"`
	ValidationMethod string   `yaml:"validation_method"`
}

// #endregion yaml-types

// #region load
// LoadCatalog reads a YAML catalogue file and builds a validated registry.
// Definitions go through the same validation as the built-in catalogues,
// so an unrecognized priority fails here, never during aggregation.
func LoadCatalog(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if file.Domain == "" {
		return nil, fmt.Errorf("catalog %s: domain must not be empty", path)
	}

	reqs := make([]Requirement, 0, len(file.Requirements))
	for _, item := range file.Requirements {
		method := item.ValidationMethod
		if method == "" {
			method = string(MethodQualitative)
		}
		reqs = append(reqs, Requirement{
			ID:               item.ID,
			Name:             item.Name,
			Description:      item.Description,
			Article:          item.Article,
			Priority:         Priority(item.Priority),
			Category:         item.Category,
			Subcategory:      item.Subcategory,
			Metrics:          item.Metrics,
			ValidationMethod: ValidationMethod(method),
		})
	}

	return NewRegistry(file.Domain, reqs)
}

// #endregion load
