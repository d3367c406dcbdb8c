package tomldoc

// TableLike is implemented by both standard and inline tables.
type TableLike interface {
	Keys() []string
	Len() int
	Contains(key string) bool
	Get(key string) (Item, bool)
	Set(key string, v *Value)
	Remove(key string) bool
}

var (
	_ TableLike = (*Table)(nil)
	_ TableLike = (*InlineTable)(nil)
)

// Item is whatever a key resolves to: a value, a standard table or an array of tables.
type Item struct {
	val *Value
	tbl *Table
	aot bool
}

// Kind reports the kind of the item.
func (i Item) Kind() Kind {
	switch {
	case i.tbl != nil:
		return KindTable
	case i.aot:
		return KindArrayOfTables
	case i.val != nil:
		return i.val.kind
	default:
		return 0
	}
}

// IsTable reports whether the item is a standard table.
func (i Item) IsTable() bool {
	return i.tbl != nil
}

// IsInlineTable reports whether the item is an inline-table value.
func (i Item) IsInlineTable() bool {
	return i.val != nil && i.val.inline != nil
}

// IsTableLike reports whether the item is either kind of table.
func (i Item) IsTableLike() bool {
	return i.IsTable() || i.IsInlineTable()
}

// Value returns the item's value, or nil for tables.
func (i Item) Value() *Value {
	return i.val
}

// AsString returns the decoded content of a string item.
func (i Item) AsString() (string, bool) {
	if i.val == nil {
		return "", false
	}
	return i.val.AsString()
}

// AsTable returns the standard table of the item.
func (i Item) AsTable() (*Table, bool) {
	return i.tbl, i.tbl != nil
}

// AsInlineTable returns the inline table of the item.
func (i Item) AsInlineTable() (*InlineTable, bool) {
	if i.val == nil {
		return nil, false
	}
	return i.val.AsInlineTable()
}

// AsTableLike returns the item as a TableLike when it is either kind of table.
func (i Item) AsTableLike() (TableLike, bool) {
	if i.tbl != nil {
		return i.tbl, true
	}
	if t, ok := i.AsInlineTable(); ok {
		return t, true
	}
	return nil, false
}

// Literal returns the TOML text of a value item. Tables have no literal.
func (i Item) Literal() string {
	if i.val == nil {
		return ""
	}
	return i.val.String()
}
