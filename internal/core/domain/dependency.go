package domain

// VersionAttribute is the only attribute a Scalar entry can hold.
const VersionAttribute = "version"

// EntryForm is the on-disk representation of a dependency entry.
type EntryForm uint8

const (
	// FormScalar is a bare version string: pkg = "1.0.0".
	FormScalar EntryForm = iota + 1
	// FormRecord is a table of attributes: pkg = { version = "1.0.0", url = "..." }.
	FormRecord
)

// String returns the lower-case name of the form.
func (f EntryForm) String() string {
	switch f {
	case FormScalar:
		return "scalar"
	case FormRecord:
		return "record"
	default:
		return "unknown"
	}
}

// MarshalText renders the form by name for the json and yaml encoders.
func (f EntryForm) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Attribute is a single named value of a dependency entry.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Dependency describes one entry of a dependency table.
type Dependency struct {
	// Name is the package name, the entry's key.
	Name string `json:"name" yaml:"name"`

	// Form is the representation the entry currently has.
	Form EntryForm `json:"form" yaml:"form"`

	// Attributes holds the entry's attributes in document order.
	// A Scalar entry has exactly one attribute, "version".
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
}

// Attribute returns the value of the named attribute.
func (d *Dependency) Attribute(name string) (string, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// ValueType selects how a value given on the command line is written.
type ValueType uint8

const (
	// ValueString writes a TOML basic string.
	ValueString ValueType = iota
	// ValueInteger writes a TOML integer.
	ValueInteger
	// ValueFloat writes a TOML float.
	ValueFloat
	// ValueBool writes a TOML boolean.
	ValueBool
)

// String returns the canonical name of the type.
func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "string"
	case ValueInteger:
		return "int"
	case ValueFloat:
		return "float"
	case ValueBool:
		return "bool"
	default:
		return "unknown"
	}
}

// ParseValueType converts a type name into a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "", "string":
		return ValueString, nil
	case "int", "integer":
		return ValueInteger, nil
	case "float":
		return ValueFloat, nil
	case "bool", "boolean":
		return ValueBool, nil
	default:
		return ValueString, ErrInvalidValueType
	}
}
