// Package tomldoc implements a format-preserving TOML document.
//
// A parsed document is split into chunks, one per key/value line and one per
// table header, each owning the blank lines and comments that precede it.
// Chunks that are never touched are written back byte for byte; edits only
// replace the value text of a single key or insert new chunks.
package tomldoc

import (
	"bytes"
	"slices"
)

// Document is a parsed TOML document.
type Document struct {
	root     *section
	sections []*section
	trailer  string
	// eol is the line ending of the parsed text; empty means "\n".
	eol string
}

// section is the root table or a table introduced by a [header] or [[header]].
type section struct {
	path    []string
	array   bool
	lead    string
	line    string
	synth   bool
	entries []*entry
}

// entry is a key/value line. path is relative to the owning section and has
// more than one segment for dotted keys.
type entry struct {
	path  []string
	pre   string
	val   *Value
	post  string
	synth bool
}

// New returns an empty document.
func New() *Document {
	return &Document{root: &section{}}
}

// Root returns the top-level table.
func (d *Document) Root() *Table {
	return &Table{doc: d, sec: d.root}
}

// Bytes renders the document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	eol := d.newline()
	d.root.render(&buf, true, eol)
	for _, s := range d.sections {
		s.render(&buf, false, eol)
	}
	buf.WriteString(d.trailer)
	return buf.Bytes()
}

// String renders the document.
func (d *Document) String() string {
	return string(d.Bytes())
}

func (s *section) render(buf *bytes.Buffer, root bool, eol string) {
	switch {
	case root:
	case s.synth:
		if buf.Len() > 0 {
			ensureNewline(buf, eol)
			buf.WriteString(eol)
		}
		open, closing := "[", "]"
		if s.array {
			open, closing = "[[", "]]"
		}
		buf.WriteString(open + formatPath(s.path) + closing + eol)
	default:
		buf.WriteString(s.lead)
		buf.WriteString(s.line)
	}

	for _, e := range s.entries {
		if e.synth {
			ensureNewline(buf, eol)
		}
		buf.WriteString(e.pre)
		buf.WriteString(e.val.String())
		buf.WriteString(e.post)
	}
}

func ensureNewline(buf *bytes.Buffer, eol string) {
	if b := buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		buf.WriteString(eol)
	}
}

func (d *Document) newline() string {
	if d.eol == "" {
		return "\n"
	}
	return d.eol
}

// detectEOL returns the line ending used by the first line of data.
func detectEOL(data []byte) string {
	if i := bytes.IndexByte(data, '\n'); i > 0 && data[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// lookup returns the [header] section with the given path.
func (d *Document) lookup(path []string) *section {
	for _, s := range d.sections {
		if !s.array && slices.Equal(s.path, path) {
			return s
		}
	}
	return nil
}

func (d *Document) isArrayOfTables(path []string) bool {
	for _, s := range d.sections {
		if s.array && slices.Equal(s.path, path) {
			return true
		}
	}
	return false
}

// firstBelow returns the index of the first section strictly below path, or -1.
func (d *Document) firstBelow(path []string) int {
	for i, s := range d.sections {
		if len(s.path) > len(path) && hasPrefix(s.path, path) {
			return i
		}
	}
	return -1
}

func (d *Document) insertSection(idx int, s *section) {
	d.sections = slices.Insert(d.sections, idx, s)
}

func hasPrefix(path, prefix []string) bool {
	return len(path) >= len(prefix) && slices.Equal(path[:len(prefix)], prefix)
}

func join(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
