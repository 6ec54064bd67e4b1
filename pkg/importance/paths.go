package importance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// pathFile is the YAML document produced by external path-finding tools:
//
//	paths:
//	  - - {id: 0, weight: 0}
//	    - {id: 4, weight: 1.7}
type pathFile struct {
	Paths []Path `yaml:"paths"`
}

// LoadPaths reads an inter-ROI path set from a YAML file.
func LoadPaths(path string) ([]Path, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read paths %s: %w", path, err)
	}
	var pf pathFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse paths %s: %w", path, err)
	}
	return pf.Paths, nil
}

// SavePaths writes a path set as YAML, the inverse of LoadPaths.
func SavePaths(paths []Path, path string) error {
	data, err := yaml.Marshal(pathFile{Paths: paths})
	if err != nil {
		return fmt.Errorf("marshal paths: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write paths %s: %w", path, err)
	}
	return nil
}
