package fs

import (
	"errors"
	"io"
	iofs "io/fs"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"go.trai.ch/zerr"
)

// Hasher computes content digests of manifest files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Sum returns the XXHash of data.
func (h *Hasher) Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ComputeFileHash computes the XXHash of a file's content. The boolean is
// false when the file does not exist.
func (h *Hasher) ComputeFileHash(fsys afero.Fs, path string) (uint64, bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, false, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), true, nil
}
