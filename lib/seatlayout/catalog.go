// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seatlayout

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Catalog maps a bus type (lowercased) to the template used when its
// seat map needs the fallback layout. Lookups for unknown bus types
// fall through to DefaultTemplate.
type Catalog struct {
	templates map[string]Template
}

// templateFile is the on-disk shape of a catalog. The file is JSONC:
// standard JSON plus // and /* */ comments and trailing commas, so
// operators can annotate the layouts.
type templateFile struct {
	Templates map[string]templateSpec `json:"templates"`
}

type templateSpec struct {
	PatternColumns  []int `json:"patternColumns"`
	FinalRowColumns []int `json:"finalRowColumns"`
	TotalColumns    int   `json:"totalColumns"`
}

// ParseCatalog parses JSONC catalog content.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file templateFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("seatlayout: parse catalog: %w", err)
	}

	catalog := &Catalog{templates: make(map[string]Template, len(file.Templates))}
	for busType, spec := range file.Templates {
		template, err := spec.template()
		if err != nil {
			return nil, fmt.Errorf("seatlayout: template %q: %w", busType, err)
		}
		catalog.templates[strings.ToLower(strings.TrimSpace(busType))] = template
	}
	return catalog, nil
}

// LoadCatalog reads and parses a JSONC catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seatlayout: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// template validates the catalog entry and fills defaults for omitted fields.
func (spec templateSpec) template() (Template, error) {
	template := Template{
		PatternColumns:  spec.PatternColumns,
		FinalRowColumns: spec.FinalRowColumns,
		TotalColumns:    spec.TotalColumns,
	}
	if template.PatternColumns == nil {
		template.PatternColumns = DefaultTemplate.PatternColumns
	}
	if template.FinalRowColumns == nil {
		template.FinalRowColumns = DefaultTemplate.FinalRowColumns
	}
	if template.TotalColumns == 0 {
		template.TotalColumns = DefaultTemplate.TotalColumns
	}
	if len(template.PatternColumns) == 0 {
		return Template{}, fmt.Errorf("patternColumns must not be empty")
	}
	if len(template.FinalRowColumns) == 0 {
		return Template{}, fmt.Errorf("finalRowColumns must not be empty")
	}
	for _, column := range template.PatternColumns {
		if column < 0 || column >= template.TotalColumns {
			return Template{}, fmt.Errorf("patternColumns index %d out of range for %d columns", column, template.TotalColumns)
		}
	}
	for _, column := range template.FinalRowColumns {
		if column < 0 || column >= template.TotalColumns {
			return Template{}, fmt.Errorf("finalRowColumns index %d out of range for %d columns", column, template.TotalColumns)
		}
	}
	return template, nil
}

// Template returns the template for a bus type, falling back to
// DefaultTemplate when the catalog has no entry (or is nil).
func (c *Catalog) Template(busType string) Template {
	if c == nil {
		return DefaultTemplate
	}
	if template, ok := c.templates[strings.ToLower(strings.TrimSpace(busType))]; ok {
		return template
	}
	return DefaultTemplate
}
