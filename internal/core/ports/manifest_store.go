package ports

import "go.trai.ch/depedit/internal/core/domain"

// ManifestStore defines the interface for reading and writing manifest files.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Read loads a manifest. A missing file is reported as
	// domain.ErrManifestNotFound together with a snapshot whose Exists is false.
	Read(path string) (domain.ManifestSnapshot, error)

	// Write replaces the manifest with data. It fails with
	// domain.ErrManifestChanged when the file no longer matches snap.
	Write(snap domain.ManifestSnapshot, data []byte) error
}
