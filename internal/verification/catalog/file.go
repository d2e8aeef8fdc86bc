package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileFormat is the on-disk YAML layout.
//
//	version: "2025-02"
//	steps:
//	  - id: dob
//	    title: Confirm Date of Birth
//	    description: ...
//	questions:
//	  - name: PAN Card
//	    questions:
//	      - id: pan-original
//	        text: Is the PAN card original?
type fileFormat struct {
	Version   string             `yaml:"version"`
	Steps     []StepDefinition   `yaml:"steps"`
	Questions []QuestionCategory `yaml:"questions"`
}

// Parse builds a Catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Version, f.Steps, f.Questions)
}

// LoadFile reads a YAML catalog from path. An empty path yields Default.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}
