// Package editor implements the dependency-entry attribute editor.
//
// Every namespace owns a <namespace>.dependencies table. An entry in that
// table is either a bare version string (Scalar form) or a table of
// attributes (Record form). Writes move an entry from Scalar to Record form
// when an attribute other than "version" is added; nothing ever moves it back.
package editor

import (
	"errors"
	"fmt"

	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/tomldoc"
	"go.trai.ch/zerr"
)

// Manifest is a parsed manifest. It is owned by a single caller and is not
// safe for concurrent use.
type Manifest struct {
	doc      *tomldoc.Document
	replaced []string
}

// Parse parses manifest text.
func Parse(text []byte) (*Manifest, error) {
	doc, err := tomldoc.Parse(text)
	if err != nil {
		return nil, parseError(err)
	}
	return &Manifest{doc: doc}, nil
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{doc: tomldoc.New()}
}

// Bytes renders the manifest.
func (m *Manifest) Bytes() []byte {
	return m.doc.Bytes()
}

// String renders the manifest.
func (m *Manifest) String() string {
	return m.doc.String()
}

// Document exposes the underlying document.
func (m *Manifest) Document() *tomldoc.Document {
	return m.doc
}

// Replaced returns the dotted paths of keys that held a non-table value and
// were turned into tables while resolving a dependency table for writing.
func (m *Manifest) Replaced() []string {
	return m.replaced
}

// SetAttribute stores a string attribute on a package.
func (m *Manifest) SetAttribute(ns domain.Namespace, pkg, attr, value string) error {
	return m.SetAttributeValue(ns, pkg, attr, tomldoc.StringValue(value))
}

// SetAttributeValue stores an attribute of any scalar kind on a package,
// creating the namespace and dependency tables when they are missing.
func (m *Manifest) SetAttributeValue(ns domain.Namespace, pkg, attr string, v *tomldoc.Value) error {
	deps, err := m.writeTable(ns)
	if err != nil {
		return err
	}

	item, exists := deps.Get(pkg)
	isVersion := attr == domain.VersionAttribute

	switch {
	case !exists && isVersion:
		deps.Set(pkg, v)
	case !exists:
		record := tomldoc.NewInlineTable()
		record.Set(attr, v)
		deps.Set(pkg, tomldoc.InlineTableValue(record))
	case item.IsTableLike():
		record, _ := item.AsTableLike()
		record.Set(attr, v)
	case isVersion:
		deps.Set(pkg, v)
	default:
		// Promote: the old scalar becomes the version, ahead of the new attribute.
		record := tomldoc.NewInlineTable()
		if old := item.Value(); old != nil {
			record.Set(domain.VersionAttribute, old)
		}
		record.Set(attr, v)
		deps.Set(pkg, tomldoc.InlineTableValue(record))
	}
	return nil
}

// GetAttribute returns an attribute of a package. String values are returned
// decoded; other values are returned as their TOML text.
func (m *Manifest) GetAttribute(ns domain.Namespace, pkg, attr string) (string, error) {
	_, entry, err := m.entry(ns, pkg)
	if err != nil {
		return "", err
	}

	if record, ok := entry.AsTableLike(); ok {
		v, found := record.Get(attr)
		if !found {
			return "", attributeNotFound(ns, pkg, attr)
		}
		return display(v), nil
	}

	if attr != domain.VersionAttribute {
		return "", attributeNotFound(ns, pkg, attr)
	}
	return display(entry), nil
}

// RemoveAttribute deletes an attribute from a Record entry. Scalar entries
// have no removable attribute, not even "version". Removing the last
// attribute leaves an empty Record.
func (m *Manifest) RemoveAttribute(ns domain.Namespace, pkg, attr string) error {
	deps, entry, err := m.entry(ns, pkg)
	if err != nil {
		return err
	}

	record, ok := entry.AsTableLike()
	if !ok || !record.Contains(attr) {
		return attributeNotFound(ns, pkg, attr)
	}

	// A dotted record only exists through its keys.
	if tbl, isTable := record.(*tomldoc.Table); isTable && tbl.IsDotted() && tbl.Len() == 1 {
		deps.Set(pkg, tomldoc.InlineTableValue(tomldoc.NewInlineTable()))
		return nil
	}
	record.Remove(attr)
	return nil
}

// RemovePackage deletes a package entry in either form.
func (m *Manifest) RemovePackage(ns domain.Namespace, pkg string) error {
	deps, _, err := m.entry(ns, pkg)
	if err != nil {
		return err
	}
	deps.Remove(pkg)
	return nil
}

// ListPackages returns the package names of a namespace in document order.
// Missing tables are created in memory, so a manifest without the namespace
// lists no packages; callers that only list never need to persist that.
func (m *Manifest) ListPackages(ns domain.Namespace) ([]string, error) {
	deps, err := m.writeTable(ns)
	if err != nil {
		return nil, err
	}
	return deps.Keys(), nil
}

// DescribePackage returns the form and attributes of a package.
func (m *Manifest) DescribePackage(ns domain.Namespace, pkg string) (domain.Dependency, error) {
	_, entry, err := m.entry(ns, pkg)
	if err != nil {
		return domain.Dependency{}, err
	}
	return describe(pkg, entry), nil
}

// Dependencies describes every package of a namespace. Unlike ListPackages
// it does not create missing tables.
func (m *Manifest) Dependencies(ns domain.Namespace) ([]domain.Dependency, error) {
	deps, err := m.readTable(ns)
	if err != nil {
		return nil, err
	}

	names := deps.Keys()
	out := make([]domain.Dependency, 0, len(names))
	for _, name := range names {
		item, _ := deps.Get(name)
		out = append(out, describe(name, item))
	}
	return out, nil
}

func describe(name string, entry tomldoc.Item) domain.Dependency {
	record, ok := entry.AsTableLike()
	if !ok {
		return domain.Dependency{
			Name:       name,
			Form:       domain.FormScalar,
			Attributes: []domain.Attribute{{Name: domain.VersionAttribute, Value: display(entry)}},
		}
	}

	dep := domain.Dependency{Name: name, Form: domain.FormRecord, Attributes: []domain.Attribute{}}
	for _, key := range record.Keys() {
		v, _ := record.Get(key)
		dep.Attributes = append(dep.Attributes, domain.Attribute{Name: key, Value: display(v)})
	}
	return dep
}

func display(item tomldoc.Item) string {
	if s, ok := item.AsString(); ok {
		return s
	}
	return item.Literal()
}

// writeTable resolves the dependency table, creating whatever is missing.
func (m *Manifest) writeTable(ns domain.Namespace) (*tomldoc.Table, error) {
	if !ns.Valid() {
		return nil, invalidNamespace(ns)
	}

	nsTable, replaced := m.doc.Root().EnsureTable(ns.String())
	if replaced {
		m.replaced = append(m.replaced, ns.String())
	}
	deps, replaced := nsTable.EnsureTable(domain.DependenciesKey)
	if replaced {
		m.replaced = append(m.replaced, ns.TablePath())
	}
	return deps, nil
}

// readTable resolves the dependency table without creating anything. Only
// standard tables qualify; an inline table under the namespace key does not.
func (m *Manifest) readTable(ns domain.Namespace) (*tomldoc.Table, error) {
	if !ns.Valid() {
		return nil, invalidNamespace(ns)
	}

	nsTable, ok := m.doc.Root().Table(ns.String())
	if !ok {
		return nil, namespaceNotFound(ns, ns.String())
	}
	deps, ok := nsTable.Table(domain.DependenciesKey)
	if !ok {
		return nil, namespaceNotFound(ns, ns.TablePath())
	}
	return deps, nil
}

func (m *Manifest) entry(ns domain.Namespace, pkg string) (*tomldoc.Table, tomldoc.Item, error) {
	deps, err := m.readTable(ns)
	if err != nil {
		return nil, tomldoc.Item{}, err
	}
	item, ok := deps.Get(pkg)
	if !ok {
		return nil, tomldoc.Item{}, packageNotFound(ns, pkg)
	}
	return deps, item, nil
}

func parseError(err error) error {
	var pe *tomldoc.ParseError
	if !errors.As(err, &pe) {
		return zerr.Wrap(domain.ErrParse, err.Error())
	}
	wrapped := zerr.Wrap(domain.ErrParse, pe.Message)
	if pe.Line > 0 {
		wrapped = zerr.With(wrapped, "line", pe.Line)
		wrapped = zerr.With(wrapped, "column", pe.Column)
	}
	return wrapped
}

func invalidNamespace(ns domain.Namespace) error {
	return zerr.With(zerr.Wrap(domain.ErrInvalidNamespace, "unsupported namespace"), "namespace", int(ns))
}

func namespaceNotFound(ns domain.Namespace, table string) error {
	err := zerr.Wrap(domain.ErrNamespaceNotFound, fmt.Sprintf("table [%s] is not defined", table))
	return zerr.With(err, "namespace", ns.String())
}

func packageNotFound(ns domain.Namespace, pkg string) error {
	err := zerr.Wrap(domain.ErrPackageNotFound, fmt.Sprintf("package %q is not declared in [%s]", pkg, ns.TablePath()))
	err = zerr.With(err, "namespace", ns.String())
	return zerr.With(err, "package", pkg)
}

func attributeNotFound(ns domain.Namespace, pkg, attr string) error {
	err := zerr.Wrap(domain.ErrAttributeNotFound, fmt.Sprintf("package %q has no attribute %q", pkg, attr))
	err = zerr.With(err, "namespace", ns.String())
	err = zerr.With(err, "package", pkg)
	return zerr.With(err, "attribute", attr)
}
