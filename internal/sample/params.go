package sample

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadParams reads a YAML parameter file over DefaultParams.
// Keys absent from the file keep their default.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Params{}, fmt.Errorf("parse sample params %s: %w", path, err)
	}
	return p, nil
}
