package tomldoc

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// ParseError reports a document that is not valid TOML.
type ParseError struct {
	Line    int
	Column  int
	Message string
	err     error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.err
}

// ParseString parses a document from text.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// Parse parses a document. The input is fully validated first, so semantic
// errors such as duplicate keys are reported even though the chunk builder
// never needs to look at them.
func Parse(data []byte) (*Document, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	b := &builder{data: data, doc: New()}
	b.cur = b.doc.root
	b.doc.eol = detectEOL(data)
	b.p.KeepComments = true
	b.p.Reset(data)

	for b.p.NextExpression() {
		b.expression(b.p.Expression())
	}
	if err := b.p.Error(); err != nil {
		return nil, b.parseError(err)
	}

	b.doc.trailer = string(data[b.leadStart:])
	return b.doc, nil
}

func validate(data []byte) error {
	var v map[string]any
	err := toml.Unmarshal(data, &v)
	if err == nil {
		return nil
	}

	var de *toml.DecodeError
	if errors.As(err, &de) {
		row, col := de.Position()
		return &ParseError{Line: row, Column: col, Message: de.Error(), err: err}
	}
	return &ParseError{Message: err.Error(), err: err}
}

type builder struct {
	data []byte
	p    unstable.Parser
	doc  *Document
	cur  *section

	// leadStart is the end of the last chunk; text from here up to the next
	// key or header belongs to that key or header.
	leadStart int
}

func (b *builder) parseError(err error) error {
	var pe *unstable.ParserError
	if errors.As(err, &pe) && len(pe.Highlight) > 0 {
		shape := b.p.Shape(b.p.Range(pe.Highlight))
		return &ParseError{Line: shape.Start.Line, Column: shape.Start.Column, Message: pe.Message, err: err}
	}
	return &ParseError{Message: err.Error(), err: err}
}

func (b *builder) expression(expr *unstable.Node) {
	switch expr.Kind {
	case unstable.KeyValue:
		b.cur.entries = append(b.cur.entries, b.keyValue(expr))
	case unstable.Table, unstable.ArrayTable:
		s := b.header(expr)
		b.doc.sections = append(b.doc.sections, s)
		b.cur = s
	default:
		// Standalone comments become part of the next chunk's lead.
	}
}

func (b *builder) keyValue(expr *unstable.Node) *entry {
	path, _, keyEnd := b.key(expr.Key())
	valStart := b.afterEquals(keyEnd)
	val, valEnd := b.value(expr.Value(), valStart)
	end := b.lineEnd(valEnd, expr)

	e := &entry{
		path: path,
		pre:  string(b.data[b.leadStart:valStart]),
		val:  val,
		post: string(b.data[valEnd:end]),
	}
	b.leadStart = end
	return e
}

func (b *builder) header(expr *unstable.Node) *section {
	path, keyStart, keyEnd := b.key(expr.Key())

	open := bytes.LastIndexByte(b.data[:keyStart], '[')
	if expr.Kind == unstable.ArrayTable {
		open--
	}
	lineStart := bytes.LastIndexByte(b.data[:open], '\n') + 1
	if lineStart < b.leadStart {
		lineStart = b.leadStart
	}

	closeEnd := b.skipSpace(keyEnd) + 1
	if expr.Kind == unstable.ArrayTable {
		closeEnd++
	}
	end := b.lineEnd(closeEnd, expr)

	s := &section{
		path:  path,
		array: expr.Kind == unstable.ArrayTable,
		lead:  string(b.data[b.leadStart:lineStart]),
		line:  string(b.data[lineStart:end]),
	}
	b.leadStart = end
	return s
}

// key decodes a possibly dotted key and returns the byte range it spans.
func (b *builder) key(it unstable.Iterator) (path []string, start, end int) {
	start = -1
	for it.Next() {
		k := it.Node()
		if start < 0 {
			start = int(k.Raw.Offset)
		}
		end = int(k.Raw.Offset + k.Raw.Length)
		path = append(path, string(k.Data))
	}
	return path, start, end
}

// afterEquals returns the offset of the value following a key that ends at pos.
func (b *builder) afterEquals(pos int) int {
	pos = b.skipSpace(pos)
	if pos < len(b.data) && b.data[pos] == '=' {
		pos++
	}
	return b.skipSpace(pos)
}

// lineEnd returns the offset just past the newline that ends the expression,
// taking a trailing comment into account.
func (b *builder) lineEnd(contentEnd int, expr *unstable.Node) int {
	if c := expr.Next(); c != nil && c.Kind == unstable.Comment {
		contentEnd = int(c.Raw.Offset + c.Raw.Length)
	}
	i := bytes.IndexByte(b.data[contentEnd:], '\n')
	if i < 0 {
		return len(b.data)
	}
	return contentEnd + i + 1
}

func (b *builder) value(n *unstable.Node, start int) (*Value, int) {
	switch n.Kind {
	case unstable.InlineTable:
		t, end := b.inlineTable(n, start)
		return &Value{kind: KindInlineTable, raw: string(b.data[start:end]), inline: t}, end
	case unstable.Array:
		end := b.arrayEnd(n, start)
		return &Value{kind: KindArray, raw: string(b.data[start:end])}, end
	}

	end := b.scalarEnd(n, start)
	v := &Value{kind: scalarKind(n.Kind), raw: string(b.data[start:end])}
	if n.Kind == unstable.String {
		v.str = string(n.Data)
	}
	return v, end
}

func (b *builder) scalarEnd(n *unstable.Node, start int) int {
	if n.Raw.Length > 0 {
		return int(n.Raw.Offset + n.Raw.Length)
	}
	// Booleans and date-times carry no raw range but their data is a
	// slice of the input starting at the value.
	return start + len(n.Data)
}

func scalarKind(k unstable.Kind) Kind {
	switch k {
	case unstable.String:
		return KindString
	case unstable.Integer:
		return KindInteger
	case unstable.Float:
		return KindFloat
	case unstable.Bool:
		return KindBool
	default:
		return KindDateTime
	}
}

func (b *builder) inlineTable(n *unstable.Node, start int) (*InlineTable, int) {
	t := &InlineTable{}
	boundary := start + 1
	pos := b.skipSpace(start + 1)

	for it := n.Children(); it.Next(); {
		kv := it.Node()
		path, keyStart, keyEnd := b.key(kv.Key())
		valStart := b.afterEquals(keyEnd)
		val, valEnd := b.value(kv.Value(), valStart)
		pos = b.skipSpace(valEnd)

		t.entries = append(t.entries, &inlineEntry{
			path:   path,
			rawKey: string(b.data[keyStart:keyEnd]),
			pre:    string(b.data[boundary:valStart]),
			val:    val,
			post:   string(b.data[valEnd:pos]),
		})
		boundary = pos + 1
	}

	if len(t.entries) == 0 {
		t.pad = string(b.data[start+1 : pos])
	} else {
		last := t.entries[len(t.entries)-1]
		t.pad = last.post
		last.post = ""
	}
	return t, pos + 1
}

func (b *builder) arrayEnd(n *unstable.Node, start int) int {
	pos := start + 1
	for it := n.Children(); it.Next(); {
		c := it.Node()
		if c.Kind == unstable.Comment {
			pos = commentEnd(c)
			continue
		}
		_, pos = b.value(c, b.skipArraySpace(pos))
	}
	return b.skipArraySpace(pos) + 1
}

func commentEnd(c *unstable.Node) int {
	end := int(c.Raw.Offset + c.Raw.Length)
	for it := c.Children(); it.Next(); {
		if e := commentEnd(it.Node()); e > end {
			end = e
		}
	}
	return end
}

func (b *builder) skipSpace(pos int) int {
	for pos < len(b.data) && (b.data[pos] == ' ' || b.data[pos] == '\t') {
		pos++
	}
	return pos
}

// skipArraySpace skips whitespace, newlines, comments and separators between array elements.
func (b *builder) skipArraySpace(pos int) int {
	for pos < len(b.data) {
		switch b.data[pos] {
		case ' ', '\t', '\r', '\n', ',':
			pos++
		case '#':
			i := bytes.IndexByte(b.data[pos:], '\n')
			if i < 0 {
				return len(b.data)
			}
			pos += i
		default:
			return pos
		}
	}
	return pos
}
