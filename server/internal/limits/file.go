package limits

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/motortwin/motortwin/pkg/types"
)

// document is the on-disk layout of a limits file. It matches the limits
// section of the server config so either file can be loaded here.
type document struct {
	Limits []types.Limit `yaml:"limits"`
}

// LoadFile reads a YAML document with a top-level "limits:" list.
func LoadFile(path string) ([]types.Limit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("limits: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML limits document. Rows without a parameter name are
// rejected; bounds that are absent or not numeric decode as 0.
func Parse(data []byte) ([]types.Limit, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("limits: parse yaml: %w", err)
	}
	for i, l := range doc.Limits {
		if l.Parameter == "" {
			return nil, fmt.Errorf("limits: row %d: parameter is required", i)
		}
	}
	return doc.Limits, nil
}
