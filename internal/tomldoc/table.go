package tomldoc

import (
	"slices"
)

// Table is a standard table. It is either backed by a [header] section, a
// group of dotted keys inside a section, or it is implicit: it only exists as
// the parent of deeper headers and gains a header of its own on first write.
type Table struct {
	doc  *Document
	path []string

	// sec owns the entries of the table; nil for an implicit table.
	sec *section
	// prefix is the dotted path of the table inside sec.
	prefix []string
}

// Path returns the absolute key path of the table.
func (t *Table) Path() []string {
	return slices.Clone(t.path)
}

// IsDotted reports whether the table is defined only by dotted keys inside
// another table's section, as in pkg.version = "1".
func (t *Table) IsDotted() bool {
	return t.sec != nil && len(t.prefix) > 0
}

// IsImplicit reports whether the table has neither a header nor keys of its own.
func (t *Table) IsImplicit() bool {
	return t.sec == nil
}

// Keys returns the keys of the table: its own entries in document order,
// followed by sub-tables in the order their headers appear.
func (t *Table) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	if t.sec != nil {
		for _, e := range t.sec.entries {
			if len(e.path) > len(t.prefix) && hasPrefix(e.path, t.prefix) {
				add(e.path[len(t.prefix)])
			}
		}
	}
	for _, s := range t.doc.sections {
		if len(s.path) > len(t.path) && hasPrefix(s.path, t.path) {
			add(s.path[len(t.path)])
		}
	}
	return keys
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return len(t.Keys())
}

// Contains reports whether key is present.
func (t *Table) Contains(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Get resolves key inside the table.
func (t *Table) Get(key string) (Item, bool) {
	abs := join(t.path, key)

	if t.sec != nil {
		rel := join(t.prefix, key)
		for _, e := range t.sec.entries {
			if slices.Equal(e.path, rel) {
				return Item{val: e.val}, true
			}
		}
		for _, e := range t.sec.entries {
			if len(e.path) > len(rel) && hasPrefix(e.path, rel) {
				return Item{tbl: &Table{doc: t.doc, path: abs, sec: t.sec, prefix: rel}}, true
			}
		}
	}

	if t.doc.isArrayOfTables(abs) {
		return Item{aot: true}, true
	}
	if s := t.doc.lookup(abs); s != nil {
		return Item{tbl: &Table{doc: t.doc, path: abs, sec: s}}, true
	}
	if t.doc.firstBelow(abs) >= 0 {
		return Item{tbl: &Table{doc: t.doc, path: abs}}, true
	}
	return Item{}, false
}

// Table returns the standard table stored under key.
func (t *Table) Table(key string) (*Table, bool) {
	item, ok := t.Get(key)
	if !ok {
		return nil, false
	}
	return item.AsTable()
}

// Set stores v under key. An existing value is replaced in place. A dotted
// sub-table under key is replaced by v at the position of its first key; any
// other sub-table under key is removed and v is appended after the table's
// last entry.
func (t *Table) Set(key string, v *Value) {
	t.materialize()
	rel := join(t.prefix, key)
	at := -1
	for i, e := range t.sec.entries {
		if slices.Equal(e.path, rel) {
			e.val = v
			return
		}
		if at < 0 && hasPrefix(e.path, rel) {
			at = i
		}
	}
	t.Remove(key)

	e := &entry{
		path:  rel,
		pre:   formatPath(rel) + " = ",
		val:   v,
		post:  t.doc.newline(),
		synth: true,
	}
	if at >= 0 {
		t.sec.entries = slices.Insert(t.sec.entries, at, e)
		return
	}
	idx := len(t.sec.entries)
	if len(t.prefix) > 0 {
		for i, other := range t.sec.entries {
			if hasPrefix(other.path, t.prefix) {
				idx = i + 1
			}
		}
	}
	t.sec.entries = slices.Insert(t.sec.entries, idx, e)
}

// Remove deletes key, including every sub-table below it, and reports
// whether anything was removed. An implicit table gets a header first, so it
// outlives its last sub-table.
func (t *Table) Remove(key string) bool {
	if t.sec == nil && t.Contains(key) {
		t.materialize()
	}
	removed := false
	abs := join(t.path, key)

	if t.sec != nil {
		rel := join(t.prefix, key)
		t.sec.entries = slices.DeleteFunc(t.sec.entries, func(e *entry) bool {
			if hasPrefix(e.path, rel) {
				removed = true
				return true
			}
			return false
		})
	}
	t.doc.sections = slices.DeleteFunc(t.doc.sections, func(s *section) bool {
		if hasPrefix(s.path, abs) {
			removed = true
			return true
		}
		return false
	})
	return removed
}

// EnsureTable returns the standard table stored under key, creating it when
// missing. An inline table under key is converted into a standard table that
// keeps its entries; any other value under key is replaced. The returned flag
// reports whether an existing non-table value was replaced or converted.
func (t *Table) EnsureTable(key string) (*Table, bool) {
	item, ok := t.Get(key)
	if ok {
		if tbl, isTable := item.AsTable(); isTable {
			return tbl, false
		}
	}

	inline, _ := item.AsInlineTable()
	if ok {
		t.Remove(key)
	}

	s := &section{path: join(t.path, key), synth: true}
	if inline != nil {
		for _, ie := range inline.entries {
			s.entries = append(s.entries, &entry{
				path:  ie.path,
				pre:   ie.rawKey + " = ",
				val:   ie.val,
				post:  t.doc.newline(),
				synth: true,
			})
		}
	}
	t.doc.insertSection(t.childIndex(), s)
	return &Table{doc: t.doc, path: s.path, sec: s}, ok
}

// childIndex returns where a new sub-table header goes: after the table's own
// section and after every existing section below it.
func (t *Table) childIndex() int {
	idx := 0
	if t.sec != nil && t.sec != t.doc.root {
		idx = slices.Index(t.doc.sections, t.sec) + 1
	}
	for i, s := range t.doc.sections {
		if hasPrefix(s.path, t.path) && i+1 > idx {
			idx = i + 1
		}
	}
	return idx
}

// materialize gives an implicit table a header, placed before the first
// header below it.
func (t *Table) materialize() {
	if t.sec != nil {
		return
	}
	s := &section{path: slices.Clone(t.path), synth: true}
	idx := t.doc.firstBelow(t.path)
	if idx < 0 {
		idx = len(t.doc.sections)
	}
	t.doc.insertSection(idx, s)
	t.sec = s
	t.prefix = nil
}
