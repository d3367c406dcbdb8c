package domain

// ManifestSnapshot is the content of a manifest file as it was read.
type ManifestSnapshot struct {
	// Path is the file the snapshot was read from.
	Path string

	// Data is the raw file content.
	Data []byte

	// Digest identifies Data. A write is rejected when the file on disk no
	// longer has this digest.
	Digest uint64

	// Exists is false when the file did not exist; Data is then empty.
	Exists bool
}
