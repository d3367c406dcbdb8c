package tomldoc

import "strings"

// inlineEntry is one key = value pair of an inline table. pre holds the text
// between the preceding '{' or ',' and the value, key included. post holds the
// whitespace between the value and the following separator.
type inlineEntry struct {
	path   []string
	rawKey string
	pre    string
	val    *Value
	post   string
}

func (e *inlineEntry) key() string {
	return strings.Join(e.path, ".")
}

// InlineTable is a { k = v, ... } value. Entries keep their source spacing;
// entries added later are rendered as " k = v".
type InlineTable struct {
	entries []*inlineEntry
	pad     string
}

// NewInlineTable returns an empty inline table.
func NewInlineTable() *InlineTable {
	return &InlineTable{}
}

// Keys returns the keys of the table in document order. A dotted key inside
// an inline table is reported, and addressed, in its dotted form.
func (t *InlineTable) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		keys = append(keys, e.key())
	}
	return keys
}

// Len returns the number of entries.
func (t *InlineTable) Len() int {
	return len(t.entries)
}

// Contains reports whether key is present.
func (t *InlineTable) Contains(key string) bool {
	return t.find(key) >= 0
}

// Get returns the value stored under key.
func (t *InlineTable) Get(key string) (Item, bool) {
	i := t.find(key)
	if i < 0 {
		return Item{}, false
	}
	return Item{val: t.entries[i].val}, true
}

// Set stores v under key. An existing entry keeps its position and spacing.
func (t *InlineTable) Set(key string, v *Value) {
	if i := t.find(key); i >= 0 {
		t.entries[i].val = v
		return
	}
	if len(t.entries) == 0 && t.pad == "" {
		t.pad = " "
	}
	raw := formatKey(key)
	t.entries = append(t.entries, &inlineEntry{
		path:   []string{key},
		rawKey: raw,
		pre:    " " + raw + " = ",
		val:    v,
	})
}

// Remove deletes key and reports whether it was present.
func (t *InlineTable) Remove(key string) bool {
	i := t.find(key)
	if i < 0 {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	if len(t.entries) == 0 {
		t.pad = ""
	}
	return true
}

// String renders the table.
func (t *InlineTable) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(e.pre)
		sb.WriteString(e.val.String())
		sb.WriteString(e.post)
	}
	sb.WriteString(t.pad)
	sb.WriteByte('}')
	return sb.String()
}

func (t *InlineTable) find(key string) int {
	for i, e := range t.entries {
		if e.key() == key {
			return i
		}
	}
	return -1
}
