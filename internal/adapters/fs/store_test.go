package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depedit/internal/adapters/fs"
	"go.trai.ch/depedit/internal/core/domain"
)

func newMemStore(t *testing.T) (*fs.Store, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/work", 0o755))
	return fs.NewStoreWithFs(mem, fs.NewHasher()), mem
}

func TestStore_Read(t *testing.T) {
	store, mem := newMemStore(t)
	require.NoError(t, afero.WriteFile(mem, "/work/deps.toml", []byte("[nipm]\n"), 0o644))

	snap, err := store.Read("/work/deps.toml")
	require.NoError(t, err)
	assert.True(t, snap.Exists)
	assert.Equal(t, "/work/deps.toml", snap.Path)
	assert.Equal(t, "[nipm]\n", string(snap.Data))
	assert.Equal(t, fs.NewHasher().Sum([]byte("[nipm]\n")), snap.Digest)
}

func TestStore_Read_Missing(t *testing.T) {
	store, _ := newMemStore(t)

	snap, err := store.Read("/work/missing.toml")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
	assert.False(t, snap.Exists)
	assert.Equal(t, "/work/missing.toml", snap.Path)
}

func TestStore_Write(t *testing.T) {
	store, mem := newMemStore(t)
	require.NoError(t, afero.WriteFile(mem, "/work/deps.toml", []byte("old\n"), 0o600))

	snap, err := store.Read("/work/deps.toml")
	require.NoError(t, err)
	require.NoError(t, store.Write(snap, []byte("new\n")))

	data, err := afero.ReadFile(mem, "/work/deps.toml")
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	info, err := mem.Stat("/work/deps.toml")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "existing permissions are kept")

	entries, err := afero.ReadDir(mem, "/work")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestStore_Write_CreatesFile(t *testing.T) {
	store, mem := newMemStore(t)

	snap, err := store.Read("/work/deps.toml")
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
	require.NoError(t, store.Write(snap, []byte("[nipm]\n")))

	data, err := afero.ReadFile(mem, "/work/deps.toml")
	require.NoError(t, err)
	assert.Equal(t, "[nipm]\n", string(data))
}

func TestStore_Write_Changed(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, mem afero.Fs)
	}{
		{
			name: "modified",
			setup: func(t *testing.T, mem afero.Fs) {
				t.Helper()
				require.NoError(t, afero.WriteFile(mem, "/work/deps.toml", []byte("other\n"), 0o644))
			},
		},
		{
			name: "deleted",
			setup: func(t *testing.T, mem afero.Fs) {
				t.Helper()
				require.NoError(t, mem.Remove("/work/deps.toml"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mem := newMemStore(t)
			require.NoError(t, afero.WriteFile(mem, "/work/deps.toml", []byte("old\n"), 0o644))

			snap, err := store.Read("/work/deps.toml")
			require.NoError(t, err)

			tt.setup(t, mem)

			err = store.Write(snap, []byte("new\n"))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrManifestChanged)
		})
	}
}

func TestStore_Write_CreatedConcurrently(t *testing.T) {
	store, mem := newMemStore(t)

	snap, err := store.Read("/work/deps.toml")
	require.ErrorIs(t, err, domain.ErrManifestNotFound)

	require.NoError(t, afero.WriteFile(mem, "/work/deps.toml", []byte("[vipm]\n"), 0o644))

	err = store.Write(snap, []byte("[nipm]\n"))
	assert.ErrorIs(t, err, domain.ErrManifestChanged)
}

func TestStore_OsFs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644)) //nolint:gosec // Test file permissions

	store := fs.NewStore(fs.NewHasher())
	snap, err := store.Read(path)
	require.NoError(t, err)
	require.NoError(t, store.Write(snap, []byte("a = 2\n")))

	data, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Equal(t, "a = 2\n", string(data))
}

func TestHasher_ComputeFileHash(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/f", []byte("content"), 0o644))

	h := fs.NewHasher()
	digest, exists, err := h.ComputeFileHash(mem, "/f")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, h.Sum([]byte("content")), digest)

	_, exists, err = h.ComputeFileHash(mem, "/missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
