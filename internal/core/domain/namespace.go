package domain

import "go.trai.ch/zerr"

// Namespace identifies the package manager whose dependency table is edited.
// The set of namespaces is closed.
type Namespace uint8

const (
	// NamespaceNIPM selects the [nipm] table.
	NamespaceNIPM Namespace = iota + 1
	// NamespaceVIPM selects the [vipm] table.
	NamespaceVIPM
)

// DependenciesKey is the name of the dependency table inside a namespace table.
const DependenciesKey = "dependencies"

var namespaceNames = map[Namespace]string{
	NamespaceNIPM: "nipm",
	NamespaceVIPM: "vipm",
}

// Namespaces returns every supported namespace in declaration order.
func Namespaces() []Namespace {
	return []Namespace{NamespaceNIPM, NamespaceVIPM}
}

// ParseNamespace converts an identifier into a Namespace.
// Matching is exact; "NIPM" is not a valid namespace.
func ParseNamespace(s string) (Namespace, error) {
	for _, ns := range Namespaces() {
		if namespaceNames[ns] == s {
			return ns, nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidNamespace, "unsupported namespace"), "namespace", s)
}

// String returns the identifier of the namespace, which is also its table key.
func (n Namespace) String() string {
	if name, ok := namespaceNames[n]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether n is one of the supported namespaces.
func (n Namespace) Valid() bool {
	_, ok := namespaceNames[n]
	return ok
}

// TablePath returns the dotted path of the namespace's dependency table.
func (n Namespace) TablePath() string {
	return n.String() + "." + DependenciesKey
}
