package config

// SettingsFile represents the structure of a .depedit.yaml settings file.
// Values set here are overridden by DEPEDIT_* environment variables.
type SettingsFile struct {
	Manifest    string `yaml:"manifest"`
	Namespace   string `yaml:"namespace"`
	Output      string `yaml:"output"`
	JSONLog     bool   `yaml:"json_log"`
	Concurrency int    `yaml:"concurrency"`
}
