package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the file format for bulk catalog replacement. The same
// shape is accepted as JSON or YAML.
type CatalogSchema struct {
	Locale   string          `json:"locale" yaml:"locale"`
	Products []ProductImport `json:"products" yaml:"products"`
}

// ProductImport is one catalog line. Price is a pointer so a missing price
// can be told apart from a free item.
type ProductImport struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Price    *int64 `json:"price" yaml:"price"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// LoadCatalogSchema reads a catalog file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogSchema(data, filepath.Ext(path))
}

func ParseCatalogSchema(data []byte, ext string) (*CatalogSchema, error) {
	var schema CatalogSchema
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing catalog yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing catalog json: %w", err)
		}
	}
	return &schema, nil
}
