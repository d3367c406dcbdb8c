package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depedit/internal/adapters/logger"
	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer. NO_COLOR keeps the
// output free of escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{name: "simple message", msg: "wrote deps.toml", goldenName: "info_basic"},
		{name: "empty message", msg: "", goldenName: "info_empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("replaced non-table value at nipm")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name: "package not found",
			err: func() error {
				err := zerr.Wrap(domain.ErrPackageNotFound, `package "pkg" is not declared in [nipm.dependencies]`)
				err = zerr.With(err, "namespace", "nipm")
				return zerr.With(err, "package", "pkg")
			}(),
			goldenName: "error_package_not_found",
		},
		{
			name: "parse error with position",
			err: func() error {
				err := zerr.Wrap(domain.ErrParse, "expected ']'")
				err = zerr.With(err, "line", 1)
				return zerr.With(err, "column", 6)
			}(),
			goldenName: "error_parse",
		},
		{
			name: "stdlib chain",
			err: fmt.Errorf("failed to initialize: %w",
				fmt.Errorf("failed to connect: %w", errors.New("connection refused"))),
			goldenName: "error_chain_stdlib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String(), "Expected no output for nil error")
}

func TestLogger_SetJSON(t *testing.T) {
	err := zerr.With(zerr.Wrap(domain.ErrManifestChanged, "refusing to overwrite"), "path", "deps.toml")

	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, "refusing to overwrite")
	assert.Contains(t, out, `"path":"deps.toml"`)
	assert.NotContains(t, out, "✗", "JSON format should not have pretty markers")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("error in pretty mode"))
	prettyOutput := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Warn("warning in json mode")
	jsonOutput := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("error back in pretty mode"))
	backToPrettyOutput := buf.String()

	assert.Contains(t, prettyOutput, "✗")
	assert.Contains(t, jsonOutput, `"level":"WARN"`)
	assert.NotContains(t, jsonOutput, "!")
	assert.Contains(t, backToPrettyOutput, "✗")
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetOutput(io.Discard)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(4)
		go func() { defer wg.Done(); lg.Info("concurrent info") }()
		go func() { defer wg.Done(); lg.Warn("concurrent warn") }()
		go func() { defer wg.Done(); lg.Error(errors.New("concurrent error")) }()
		go func() { defer wg.Done(); lg.SetJSON(true) }()
	}
	wg.Wait()
}
