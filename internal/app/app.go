// Package app implements the application layer for depedit.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/core/ports"
	"go.trai.ch/depedit/internal/engine/editor"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// jsonSwitcher is implemented by loggers that can emit JSON records.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	store    ports.ManifestStore
	settings ports.SettingsLoader
	logger   ports.Logger
	workDir  string
	stdout   io.Writer
}

// New creates a new App instance.
func New(store ports.ManifestStore, settings ports.SettingsLoader, log ports.Logger) *App {
	return &App{
		store:    store,
		settings: settings,
		logger:   log,
		workDir:  ".",
		stdout:   os.Stdout,
	}
}

// WithWorkDir sets the directory settings are resolved from.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// Options holds the flags shared by every command. Zero values fall back to
// the loaded settings.
type Options struct {
	Files     []string
	Namespace string
	Output    string
	JSONLog   bool
	Out       io.Writer
}

// SetOptions configuration for the Set method.
type SetOptions struct {
	Options

	// Type selects how the value is written: string, int, float or bool.
	Type string

	// Create starts from an empty manifest when a file does not exist.
	Create bool
}

// session is a command invocation with every option resolved.
type session struct {
	settings domain.Settings
	ns       domain.Namespace
	files    []string
	format   domain.OutputFormat
	out      io.Writer
}

// Set stores an attribute on a package in every selected manifest.
func (a *App) Set(ctx context.Context, opts SetOptions, pkg, attr, value string) error {
	s, err := a.prepare(opts.Options)
	if err != nil {
		return err
	}

	typ, err := domain.ParseValueType(opts.Type)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "unknown value type"), "type", opts.Type)
	}
	v, err := editor.TypedValue(typ, value)
	if err != nil {
		return err
	}

	return a.edit(ctx, s, opts.Create, func(m *editor.Manifest) error {
		return m.SetAttributeValue(s.ns, pkg, attr, v)
	})
}

// RemoveAttribute deletes an attribute of a package in every selected manifest.
func (a *App) RemoveAttribute(ctx context.Context, opts Options, pkg, attr string) error {
	s, err := a.prepare(opts)
	if err != nil {
		return err
	}
	return a.edit(ctx, s, false, func(m *editor.Manifest) error {
		return m.RemoveAttribute(s.ns, pkg, attr)
	})
}

// RemovePackage deletes a package from every selected manifest.
func (a *App) RemovePackage(ctx context.Context, opts Options, pkg string) error {
	s, err := a.prepare(opts)
	if err != nil {
		return err
	}
	return a.edit(ctx, s, false, func(m *editor.Manifest) error {
		return m.RemovePackage(s.ns, pkg)
	})
}

// Get prints an attribute of a package.
func (a *App) Get(_ context.Context, opts Options, pkg, attr string) error {
	s, err := a.prepareQuery(opts)
	if err != nil {
		return err
	}
	m, err := a.read(s.files[0])
	if err != nil {
		return err
	}

	value, err := m.GetAttribute(s.ns, pkg, attr)
	if err != nil {
		return zerr.With(err, "manifest", s.files[0])
	}

	return render(s.out, s.format, attributeResult{
		Manifest:  s.files[0],
		Namespace: s.ns.String(),
		Package:   pkg,
		Attribute: attr,
		Value:     value,
	}, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, value)
		return err
	})
}

// List prints the package names of a namespace. A manifest without the
// namespace lists nothing; listing never writes the manifest.
func (a *App) List(_ context.Context, opts Options) error {
	s, err := a.prepareQuery(opts)
	if err != nil {
		return err
	}
	m, err := a.read(s.files[0])
	if err != nil {
		return err
	}

	names, err := m.ListPackages(s.ns)
	if err != nil {
		return zerr.With(err, "manifest", s.files[0])
	}
	if names == nil {
		names = []string{}
	}

	return render(s.out, s.format, packageList{
		Manifest:  s.files[0],
		Namespace: s.ns.String(),
		Packages:  names,
	}, func(w io.Writer) error {
		return writeLines(w, names)
	})
}

// Show prints the form and attributes of one package, or of every package
// of the namespace when pkg is empty.
func (a *App) Show(_ context.Context, opts Options, pkg string) error {
	s, err := a.prepareQuery(opts)
	if err != nil {
		return err
	}
	m, err := a.read(s.files[0])
	if err != nil {
		return err
	}

	var deps []domain.Dependency
	if pkg != "" {
		dep, err := m.DescribePackage(s.ns, pkg)
		if err != nil {
			return zerr.With(err, "manifest", s.files[0])
		}
		deps = []domain.Dependency{dep}
	} else {
		deps, err = m.Dependencies(s.ns)
		if err != nil {
			return zerr.With(err, "manifest", s.files[0])
		}
	}

	result := dependencyList{
		Manifest:     s.files[0],
		Namespace:    s.ns.String(),
		Dependencies: deps,
	}
	return render(s.out, s.format, result, func(w io.Writer) error {
		return writeDependencies(w, deps)
	})
}

func (a *App) prepare(opts Options) (*session, error) {
	settings, err := a.settings.Load(a.workDir)
	if err != nil {
		return nil, err
	}

	if sw, ok := a.logger.(jsonSwitcher); ok && (opts.JSONLog || settings.JSONLog) {
		sw.SetJSON(true)
	}

	name := opts.Namespace
	if name == "" {
		name = settings.Namespace
	}
	if name == "" {
		return nil, domain.ErrNoNamespace
	}
	ns, err := domain.ParseNamespace(name)
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = settings.Output
	}
	format, err := domain.ParseOutputFormat(output)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "unknown output format"), "output", output)
	}

	files := opts.Files
	if len(files) == 0 {
		files = []string{settings.Manifest}
	}

	out := opts.Out
	if out == nil {
		out = a.stdout
	}

	return &session{
		settings: settings,
		ns:       ns,
		files:    files,
		format:   format,
		out:      out,
	}, nil
}

func (a *App) prepareQuery(opts Options) (*session, error) {
	s, err := a.prepare(opts)
	if err != nil {
		return nil, err
	}
	if len(s.files) > 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrSingleManifest, "more than one --file given"), "count", len(s.files))
	}
	return s, nil
}

func (a *App) read(path string) (*editor.Manifest, error) {
	snap, err := a.store.Read(path)
	if err != nil {
		return nil, err
	}
	m, err := editor.Parse(snap.Data)
	if err != nil {
		return nil, zerr.With(err, "manifest", path)
	}
	return m, nil
}

// edit applies op to every manifest of the session, at most
// settings.Concurrency at a time. Each manifest is parsed, edited and written
// by a single goroutine. The first failure cancels manifests not yet started.
func (a *App) edit(ctx context.Context, s *session, create bool, op func(*editor.Manifest) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.Concurrency)

	for _, path := range s.files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.editFile(path, create, op)
		})
	}

	return g.Wait()
}

func (a *App) editFile(path string, create bool, op func(*editor.Manifest) error) error {
	snap, err := a.store.Read(path)
	if err != nil && (!create || !errors.Is(err, domain.ErrManifestNotFound)) {
		return err
	}

	m, err := editor.Parse(snap.Data)
	if err != nil {
		return zerr.With(err, "manifest", path)
	}
	if err := op(m); err != nil {
		return zerr.With(err, "manifest", path)
	}

	for _, key := range m.Replaced() {
		a.logger.Warn(fmt.Sprintf("%s: replaced non-table value at %s", path, key))
	}

	data := m.Bytes()
	if snap.Exists && bytes.Equal(data, snap.Data) {
		a.logger.Info(fmt.Sprintf("%s is up to date", path))
		return nil
	}

	if err := a.store.Write(snap, data); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("updated %s", path))
	return nil
}
