package domain

const (
	// DefaultManifestFile is the manifest edited when no file is given.
	DefaultManifestFile = "deps.toml"

	// ConfigFileName is the name of the per-directory settings file, without extension.
	ConfigFileName = ".depedit"

	// EnvPrefix prefixes every environment variable read as a setting.
	EnvPrefix = "DEPEDIT"

	// FilePerm is the permission used when a manifest is created.
	FilePerm = 0o644
)

// OutputFormat selects how query results are printed.
type OutputFormat string

const (
	// OutputText prints plain lines.
	OutputText OutputFormat = "text"
	// OutputJSON prints a JSON document.
	OutputJSON OutputFormat = "json"
	// OutputYAML prints a YAML document.
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", ErrInvalidOutputFormat
	}
}

// Settings holds the user-level defaults of the CLI.
type Settings struct {
	// Manifest is the manifest path used when no --file flag is given.
	Manifest string `mapstructure:"manifest"`

	// Namespace is the default namespace; empty means the flag is required.
	Namespace string `mapstructure:"namespace"`

	// Output is the default output format for queries.
	Output string `mapstructure:"output"`

	// JSONLog switches the logger to JSON records.
	JSONLog bool `mapstructure:"json_log"`

	// Concurrency bounds the number of manifests edited at once.
	Concurrency int `mapstructure:"concurrency"`
}
