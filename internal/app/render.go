package app

import (
	"encoding/json"
	"fmt"
	"io"

	"go.trai.ch/depedit/internal/core/domain"
	"gopkg.in/yaml.v3"
)

type attributeResult struct {
	Manifest  string `json:"manifest" yaml:"manifest"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Package   string `json:"package" yaml:"package"`
	Attribute string `json:"attribute" yaml:"attribute"`
	Value     string `json:"value" yaml:"value"`
}

type packageList struct {
	Manifest  string   `json:"manifest" yaml:"manifest"`
	Namespace string   `json:"namespace" yaml:"namespace"`
	Packages  []string `json:"packages" yaml:"packages"`
}

type dependencyList struct {
	Manifest     string              `json:"manifest" yaml:"manifest"`
	Namespace    string              `json:"namespace" yaml:"namespace"`
	Dependencies []domain.Dependency `json:"dependencies" yaml:"dependencies"`
}

// render writes v as JSON or YAML, or calls text for the plain format.
func render(w io.Writer, format domain.OutputFormat, v any, text func(io.Writer) error) error {
	switch format {
	case domain.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case domain.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeDependencies prints each dependency as a "name (form)" line followed
// by its indented attributes.
func writeDependencies(w io.Writer, deps []domain.Dependency) error {
	for _, dep := range deps {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", dep.Name, dep.Form); err != nil {
			return err
		}
		for _, attr := range dep.Attributes {
			if _, err := fmt.Fprintf(w, "  %s = %s\n", attr.Name, attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
