package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is returned when a manifest is not well-formed TOML.
	ErrParse = zerr.New("failed to parse manifest")

	// ErrInvalidNamespace is returned when a namespace identifier is neither nipm nor vipm.
	ErrInvalidNamespace = zerr.New("invalid namespace, expected 'nipm' or 'vipm'")

	// ErrNamespaceNotFound is returned when the namespace table or its dependency table is missing.
	ErrNamespaceNotFound = zerr.New("namespace not found")

	// ErrPackageNotFound is returned when the dependency table has no entry for a package.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrAttributeNotFound is returned when an entry does not hold the requested attribute.
	ErrAttributeNotFound = zerr.New("package attribute not found")

	// ErrManifestReadFailed is returned when a manifest file cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestWriteFailed is returned when a manifest file cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrManifestNotFound is returned when a manifest file does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestChanged is returned when a manifest was modified between read and write.
	ErrManifestChanged = zerr.New("manifest changed on disk since it was read")

	// ErrSettingsLoadFailed is returned when the settings file exists but cannot be read.
	ErrSettingsLoadFailed = zerr.New("failed to load settings")

	// ErrInvalidValueType is returned for an unknown --type value or a value that does not parse as that type.
	ErrInvalidValueType = zerr.New("invalid value type, expected string, int, float or bool")

	// ErrInvalidOutputFormat is returned for an unknown --output value.
	ErrInvalidOutputFormat = zerr.New("invalid output format, expected text, json or yaml")

	// ErrSingleManifest is returned when a query command is given more than one manifest.
	ErrSingleManifest = zerr.New("query commands read a single manifest")

	// ErrNoNamespace is returned when a command needs a namespace and none was given.
	ErrNoNamespace = zerr.New("no namespace specified")
)
