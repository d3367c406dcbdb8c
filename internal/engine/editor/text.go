package editor

import "go.trai.ch/depedit/internal/core/domain"

// SetAttribute parses text, sets the attribute and returns the new text.
func SetAttribute(text string, ns domain.Namespace, pkg, attr, value string) (string, error) {
	return edit(text, func(m *Manifest) error {
		return m.SetAttribute(ns, pkg, attr, value)
	})
}

// GetAttribute parses text and returns the attribute's value.
func GetAttribute(text string, ns domain.Namespace, pkg, attr string) (string, error) {
	m, err := Parse([]byte(text))
	if err != nil {
		return "", err
	}
	return m.GetAttribute(ns, pkg, attr)
}

// RemoveAttribute parses text, removes the attribute and returns the new text.
func RemoveAttribute(text string, ns domain.Namespace, pkg, attr string) (string, error) {
	return edit(text, func(m *Manifest) error {
		return m.RemoveAttribute(ns, pkg, attr)
	})
}

// RemovePackage parses text, removes the package and returns the new text.
func RemovePackage(text string, ns domain.Namespace, pkg string) (string, error) {
	return edit(text, func(m *Manifest) error {
		return m.RemovePackage(ns, pkg)
	})
}

// ListPackages parses text and returns the package names of a namespace.
func ListPackages(text string, ns domain.Namespace) ([]string, error) {
	m, err := Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return m.ListPackages(ns)
}

func edit(text string, op func(*Manifest) error) (string, error) {
	m, err := Parse([]byte(text))
	if err != nil {
		return "", err
	}
	if err := op(m); err != nil {
		return "", err
	}
	return m.String(), nil
}
