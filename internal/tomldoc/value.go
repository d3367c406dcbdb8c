package tomldoc

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind classifies a document item.
type Kind uint8

const (
	// KindString is a basic, literal or multi-line string.
	KindString Kind = iota + 1
	// KindInteger is an integer in any base.
	KindInteger
	// KindFloat is a float, including inf and nan.
	KindFloat
	// KindBool is true or false.
	KindBool
	// KindDateTime covers offset and local dates, times and date-times.
	KindDateTime
	// KindArray is an inline array.
	KindArray
	// KindInlineTable is a { ... } table value.
	KindInlineTable
	// KindTable is a standard table: a [header] table, a dotted-key table or an implicit parent.
	KindTable
	// KindArrayOfTables is a [[header]] array.
	KindArrayOfTables
)

var kindNames = map[Kind]string{
	KindString:        "string",
	KindInteger:       "integer",
	KindFloat:         "float",
	KindBool:          "bool",
	KindDateTime:      "datetime",
	KindArray:         "array",
	KindInlineTable:   "inline-table",
	KindTable:         "table",
	KindArrayOfTables: "array-of-tables",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Value is a TOML value as it appears on the right-hand side of a key.
// Values read from a document keep their source text; values built with the
// constructors below are rendered canonically.
type Value struct {
	kind   Kind
	raw    string
	str    string
	inline *InlineTable
}

// StringValue returns a basic string value.
func StringValue(s string) *Value {
	return &Value{kind: KindString, raw: quote(s), str: s}
}

// IntegerValue returns a decimal integer value.
func IntegerValue(i int64) *Value {
	return &Value{kind: KindInteger, raw: strconv.FormatInt(i, 10)}
}

// FloatValue returns a float value. Whole numbers keep a ".0" suffix so the
// value reads back as a float.
func FloatValue(f float64) *Value {
	var raw string
	switch {
	case math.IsNaN(f):
		raw = "nan"
	case math.IsInf(f, 1):
		raw = "inf"
	case math.IsInf(f, -1):
		raw = "-inf"
	default:
		raw = strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(raw, ".eE") {
			raw += ".0"
		}
	}
	return &Value{kind: KindFloat, raw: raw}
}

// BoolValue returns true or false.
func BoolValue(b bool) *Value {
	return &Value{kind: KindBool, raw: strconv.FormatBool(b)}
}

// InlineTableValue wraps t as a value.
func InlineTableValue(t *InlineTable) *Value {
	return &Value{kind: KindInlineTable, inline: t}
}

// Kind reports the kind of the value.
func (v *Value) Kind() Kind {
	return v.kind
}

// AsString returns the decoded content of a string value.
func (v *Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInlineTable returns the table of an inline-table value.
func (v *Value) AsInlineTable() (*InlineTable, bool) {
	if v.inline == nil {
		return nil, false
	}
	return v.inline, true
}

// String returns the TOML text of the value.
func (v *Value) String() string {
	if v.inline != nil {
		return v.inline.String()
	}
	return v.raw
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f || r == utf8.RuneError && size == 1 {
				sb.WriteString(`\u`)
				sb.WriteString(leftPad(strconv.FormatInt(int64(r), 16), 4))
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func leftPad(s string, n int) string {
	if len(s) >= n {
		return strings.ToUpper(s)
	}
	return strings.Repeat("0", n-len(s)) + strings.ToUpper(s)
}

func isBareKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' && c != '-' {
			return false
		}
	}
	return true
}

// formatKey renders a single key segment, quoting it when it is not a bare key.
func formatKey(k string) string {
	if isBareKey(k) {
		return k
	}
	return quote(k)
}

// formatPath renders a dotted key.
func formatPath(path []string) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = formatKey(k)
	}
	return strings.Join(parts, ".")
}
