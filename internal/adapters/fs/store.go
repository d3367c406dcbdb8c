// Package fs implements manifest file access.
package fs

import (
	"errors"
	iofs "io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore on top of an afero filesystem.
// Writes go to a temporary file in the manifest's directory which is then
// renamed over the manifest.
type Store struct {
	fs     afero.Fs
	hasher *Hasher
}

// NewStore creates a Store backed by the operating system's filesystem.
func NewStore(hasher *Hasher) *Store {
	return NewStoreWithFs(afero.NewOsFs(), hasher)
}

// NewStoreWithFs creates a Store backed by fsys.
func NewStoreWithFs(fsys afero.Fs, hasher *Hasher) *Store {
	return &Store{fs: fsys, hasher: hasher}
}

// Read loads the manifest at path.
func (s *Store) Read(path string) (domain.ManifestSnapshot, error) {
	snap := domain.ManifestSnapshot{Path: path}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return snap, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no such file"), "path", path)
		}
		return snap, zerr.With(zerr.Wrap(domain.ErrManifestReadFailed, err.Error()), "path", path)
	}

	snap.Data = data
	snap.Digest = s.hasher.Sum(data)
	snap.Exists = true
	return snap, nil
}

// Write replaces the manifest read as snap with data.
func (s *Store) Write(snap domain.ManifestSnapshot, data []byte) error {
	digest, exists, err := s.hasher.ComputeFileHash(s.fs, snap.Path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrManifestReadFailed, err.Error()), "path", snap.Path)
	}
	if exists != snap.Exists || digest != snap.Digest {
		return zerr.With(zerr.Wrap(domain.ErrManifestChanged, "refusing to overwrite"), "path", snap.Path)
	}

	perm := iofs.FileMode(domain.FilePerm)
	if info, statErr := s.fs.Stat(snap.Path); statErr == nil {
		perm = info.Mode().Perm()
	}

	if err := s.writeAtomic(snap.Path, data, perm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrManifestWriteFailed, err.Error()), "path", snap.Path)
	}
	return nil
}

func (s *Store) writeAtomic(path string, data []byte, perm iofs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer s.fs.Remove(tmpName) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := s.fs.Chmod(tmpName, perm); err != nil {
		return err
	}
	return s.fs.Rename(tmpName, path)
}
