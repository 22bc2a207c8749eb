package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidateYAMLSyntax validates YAML syntax by streaming through the
// document, so malformed config files fail with line information before
// koanf flattens them.
func ValidateYAMLSyntax(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// ValidateYAMLFile validates the YAML syntax of the file at path.
func ValidateYAMLFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	if err := ValidateYAMLSyntax(f); err != nil {
		return fmt.Errorf("YAML syntax error in %s: %w", path, err)
	}
	return nil
}
