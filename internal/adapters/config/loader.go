// Package config provides the settings loader for depedit.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	settingsFileType = "yaml"
	appDirName       = "depedit"
	userFileName     = "config.yaml"

	keyManifest    = "manifest"
	keyNamespace   = "namespace"
	keyOutput      = "output"
	keyJSONLog     = "json_log"
	keyConcurrency = "concurrency"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader with viper. Settings are layered as
// defaults, then the first settings file found, then DEPEDIT_* variables.
type Loader struct {
	fs         afero.Fs
	configHome string
	logger     ports.Logger
}

// NewLoader creates a Loader reading from the operating system's filesystem.
// The user-level settings file lives in os.UserConfigDir()/depedit.
func NewLoader(log ports.Logger) *Loader {
	home, err := os.UserConfigDir()
	if err != nil {
		home = ""
	}
	return NewLoaderWithFs(afero.NewOsFs(), home, log)
}

// NewLoaderWithFs creates a Loader reading from fsys. configHome may be empty
// to disable the user-level settings file.
func NewLoaderWithFs(fsys afero.Fs, configHome string, log ports.Logger) *Loader {
	return &Loader{fs: fsys, configHome: configHome, logger: log}
}

// Load resolves the settings for the given working directory.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	v := viper.New()
	v.SetFs(l.fs)
	v.SetDefault(keyManifest, domain.DefaultManifestFile)
	v.SetDefault(keyNamespace, "")
	v.SetDefault(keyOutput, string(domain.OutputText))
	v.SetDefault(keyJSONLog, false)
	v.SetDefault(keyConcurrency, runtime.NumCPU())
	v.SetEnvPrefix(domain.EnvPrefix)
	v.AutomaticEnv()

	path, err := l.findSettingsFile(cwd)
	if err != nil {
		return domain.Settings{}, err
	}
	if path != "" {
		if err := l.checkSchema(path); err != nil {
			return domain.Settings{}, err
		}
		v.SetConfigFile(path)
		v.SetConfigType(settingsFileType)
		if err := v.ReadInConfig(); err != nil {
			return domain.Settings{}, loadFailed(err, path)
		}
	}

	var settings domain.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return domain.Settings{}, loadFailed(err, path)
	}

	return l.validate(settings, path)
}

// findSettingsFile returns the project settings file when present, then the
// user settings file, or "" when neither exists.
func (l *Loader) findSettingsFile(cwd string) (string, error) {
	candidates := []string{filepath.Join(cwd, domain.ConfigFileName+"."+settingsFileType)}
	if l.configHome != "" {
		candidates = append(candidates, filepath.Join(l.configHome, appDirName, userFileName))
	}

	for _, path := range candidates {
		ok, err := afero.Exists(l.fs, path)
		if err != nil {
			return "", loadFailed(err, path)
		}
		if ok {
			return path, nil
		}
	}
	return "", nil
}

// checkSchema rejects files that are not YAML mappings and warns about keys
// the settings file does not define.
func (l *Loader) checkSchema(path string) error {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return loadFailed(err, path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var strict SettingsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(&strict)
	if err == nil {
		return nil
	}

	var typeErr *yaml.TypeError
	if !errors.As(err, &typeErr) {
		return loadFailed(err, path)
	}

	// Retry leniently: only unknown keys are tolerated.
	var lenient SettingsFile
	if lerr := yaml.Unmarshal(data, &lenient); lerr != nil {
		return loadFailed(lerr, path)
	}
	for _, msg := range typeErr.Errors {
		l.logger.Warn(fmt.Sprintf("%s: %s", path, msg))
	}
	return nil
}

func (l *Loader) validate(settings domain.Settings, path string) (domain.Settings, error) {
	if _, err := domain.ParseOutputFormat(settings.Output); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "invalid output setting"), "output", settings.Output)
	}
	if settings.Namespace != "" {
		if _, err := domain.ParseNamespace(settings.Namespace); err != nil {
			return domain.Settings{}, err
		}
	}
	if settings.Manifest == "" {
		settings.Manifest = domain.DefaultManifestFile
	}
	if settings.Concurrency < 1 {
		if path != "" {
			l.logger.Warn(fmt.Sprintf("%s: concurrency must be at least 1, using 1", path))
		}
		settings.Concurrency = 1
	}
	return settings, nil
}

func loadFailed(err error, path string) error {
	wrapped := zerr.Wrap(domain.ErrSettingsLoadFailed, err.Error())
	if path != "" {
		wrapped = zerr.With(wrapped, "path", path)
	}
	return wrapped
}
