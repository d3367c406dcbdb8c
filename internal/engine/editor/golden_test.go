package editor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/engine/editor"
)

func TestManifest_Golden(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "manifest.toml"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      string
		op         func(m *editor.Manifest) error
		goldenName string
	}{
		{
			name:  "promote scalar keeps literal",
			input: string(input),
			op: func(m *editor.Manifest) error {
				return m.SetAttribute(domain.NamespaceNIPM, "gamma", "url", "https://gamma.example")
			},
			goldenName: "promote_scalar",
		},
		{
			name:  "set on header sub-table",
			input: string(input),
			op: func(m *editor.Manifest) error {
				return m.SetAttribute(domain.NamespaceNIPM, "delta", "checksum", "abc")
			},
			goldenName: "set_on_subtable",
		},
		{
			name:  "append package",
			input: string(input),
			op: func(m *editor.Manifest) error {
				return m.SetAttribute(domain.NamespaceVIPM, "newpkg", "version", "1.0.0")
			},
			goldenName: "append_package",
		},
		{
			name:  "remove package with its comments",
			input: string(input),
			op: func(m *editor.Manifest) error {
				return m.RemovePackage(domain.NamespaceNIPM, "alpha")
			},
			goldenName: "remove_package",
		},
		{
			name:  "remove attribute",
			input: string(input),
			op: func(m *editor.Manifest) error {
				return m.RemoveAttribute(domain.NamespaceNIPM, "beta", "url")
			},
			goldenName: "remove_attribute",
		},
		{
			name:  "set in new namespace",
			input: "",
			op: func(m *editor.Manifest) error {
				if err := m.SetAttribute(domain.NamespaceVIPM, "pkg", "url", "https://pkg.example"); err != nil {
					return err
				}
				return m.SetAttribute(domain.NamespaceVIPM, "pkg", "version", "1.2.3")
			},
			goldenName: "set_new_namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := editor.Parse([]byte(tt.input))
			require.NoError(t, err)
			require.NoError(t, tt.op(m))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, m.Bytes())
		})
	}
}

func TestManifest_UntouchedRoundTrip(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "manifest.toml"))
	require.NoError(t, err)

	m, err := editor.Parse(input)
	require.NoError(t, err)

	_, err = m.GetAttribute(domain.NamespaceNIPM, "beta", "url")
	require.NoError(t, err)
	require.Equal(t, string(input), m.String())
}
