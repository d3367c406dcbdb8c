package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depedit/internal/app"
	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type testMocks struct {
	store    *mocks.MockManifestStore
	settings *mocks.MockSettingsLoader
	logger   *mocks.MockLogger
	provider ComponentProvider
}

func newTestMocks(t *testing.T) *testMocks {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &testMocks{
		store:    mocks.NewMockManifestStore(ctrl),
		settings: mocks.NewMockSettingsLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	application := app.New(m.store, m.settings, m.logger)
	m.provider = func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: m.logger,
		}, func() {}, nil
	}
	return m
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	m := newTestMocks(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, m.provider)
	assert.Equal(t, 0, exitCode)
	assert.Empty(t, stderr.String())
}

// TestRun_Edit verifies that an edit command reaches the store through the app.
func TestRun_Edit(t *testing.T) {
	m := newTestMocks(t)

	snap := domain.ManifestSnapshot{Path: "/work/deps.toml", Data: []byte("[nipm.dependencies]\n"), Exists: true}
	m.settings.EXPECT().Load("/work").Return(domain.Settings{Manifest: "/work/deps.toml", Concurrency: 1}, nil)
	m.store.EXPECT().Read("/work/deps.toml").Return(snap, nil)
	m.store.EXPECT().Write(snap, []byte("[nipm.dependencies]\npkg = \"1.0.0\"\n")).Return(nil)
	m.logger.EXPECT().Info("updated /work/deps.toml")

	exitCode := run(context.Background(), []string{"set", "pkg", "version", "1.0.0", "-n", "nipm"},
		new(bytes.Buffer), m.provider, func(a *app.App) {
			a.WithWorkDir("/work")
		})
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	m := newTestMocks(t)

	m.settings.EXPECT().Load(".").Return(domain.Settings{Manifest: "deps.toml", Concurrency: 1}, nil)
	m.store.EXPECT().Read("deps.toml").Return(domain.ManifestSnapshot{Path: "deps.toml"},
		zerr.Wrap(domain.ErrManifestNotFound, "no such file"))
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrManifestNotFound)
	})

	exitCode := run(context.Background(), []string{"rm", "pkg", "-n", "vipm"}, new(bytes.Buffer), m.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_UsageError verifies that argument errors are reported through the logger.
func TestRun_UsageError(t *testing.T) {
	m := newTestMocks(t)
	m.logger.EXPECT().Error(gomock.Any())

	exitCode := run(context.Background(), []string{"get", "pkg"}, new(bytes.Buffer), m.provider)
	assert.Equal(t, 1, exitCode)
}
