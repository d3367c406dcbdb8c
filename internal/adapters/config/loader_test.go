package config_test

import (
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depedit/internal/adapters/config"
	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, files map[string]string) (*config.Loader, *mocks.MockLogger) {
	t.Helper()

	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0o644))
	}

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoaderWithFs(mem, "/home/user/.config", log), log
}

func TestLoader_Defaults(t *testing.T) {
	loader, _ := newLoader(t, nil)

	settings, err := loader.Load("/work")
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{
		Manifest:    "deps.toml",
		Output:      "text",
		Concurrency: runtime.NumCPU(),
	}, settings)
}

func TestLoader_ProjectFile(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/work/.depedit.yaml": "manifest: pkg/deps.toml\nnamespace: vipm\noutput: json\njson_log: true\nconcurrency: 2\n",
		"/home/user/.config/depedit/config.yaml": "manifest: ignored.toml\n",
	})

	settings, err := loader.Load("/work")
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{
		Manifest:    "pkg/deps.toml",
		Namespace:   "vipm",
		Output:      "json",
		JSONLog:     true,
		Concurrency: 2,
	}, settings)
}

func TestLoader_UserFile(t *testing.T) {
	loader, _ := newLoader(t, map[string]string{
		"/home/user/.config/depedit/config.yaml": "namespace: nipm\n",
	})

	settings, err := loader.Load("/work")
	require.NoError(t, err)
	assert.Equal(t, "nipm", settings.Namespace)
	assert.Equal(t, "deps.toml", settings.Manifest)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	t.Setenv("DEPEDIT_OUTPUT", "yaml")
	t.Setenv("DEPEDIT_JSON_LOG", "true")

	loader, _ := newLoader(t, map[string]string{
		"/work/.depedit.yaml": "output: json\n",
	})

	settings, err := loader.Load("/work")
	require.NoError(t, err)
	assert.Equal(t, "yaml", settings.Output)
	assert.True(t, settings.JSONLog)
}

func TestLoader_UnknownKeyWarns(t *testing.T) {
	loader, log := newLoader(t, map[string]string{
		"/work/.depedit.yaml": "namespace: nipm\nregistry: https://example\n",
	})
	log.EXPECT().Warn(gomock.Any()).Times(1)

	settings, err := loader.Load("/work")
	require.NoError(t, err)
	assert.Equal(t, "nipm", settings.Namespace)
}

func TestLoader_ConcurrencyClamped(t *testing.T) {
	loader, log := newLoader(t, map[string]string{
		"/work/.depedit.yaml": "concurrency: 0\n",
	})
	log.EXPECT().Warn(gomock.Any()).Times(1)

	settings, err := loader.Load("/work")
	require.NoError(t, err)
	assert.Equal(t, 1, settings.Concurrency)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "not yaml", content: "manifest: [unclosed\n", wantErr: domain.ErrSettingsLoadFailed},
		{name: "wrong type", content: "concurrency: many\n", wantErr: domain.ErrSettingsLoadFailed},
		{name: "bad output", content: "output: xml\n", wantErr: domain.ErrInvalidOutputFormat},
		{name: "bad namespace", content: "namespace: npm\n", wantErr: domain.ErrInvalidNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t, map[string]string{"/work/.depedit.yaml": tt.content})

			_, err := loader.Load("/work")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
