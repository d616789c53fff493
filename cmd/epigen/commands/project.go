package commands

import (
	"os"
	"path/filepath"

	"epigen/internal/cache"
	"epigen/internal/config"
	"epigen/internal/errors"
	"epigen/internal/gen"
	"epigen/internal/logger"
	"epigen/internal/manifest"
	"epigen/internal/model"
	"epigen/internal/spec"
)

// project is the loaded and linked input of a run.
type project struct {
	units []*gen.Unit
	reg   *model.Registry
	store gen.DirStore
}

// loadProject discovers, validates and builds every spec file under the
// configured input directory. Validation warnings are logged.
func loadProject(cfg *config.Config) (*project, error) {
	log := logger.Named("load")

	var (
		m       *manifest.Manifest
		modules []string
	)

	if cfg.Manifest != "" {
		var err error

		m, err = manifest.Load(cfg.Manifest)
		if err != nil {
			return nil, err
		}

		modules = m.Modules
	}

	paths, err := spec.Discover(cfg.InputDir, cfg.Ignore, modules)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		log.Warnw("no spec files found", "input_dir", cfg.InputDir)
	}

	files, diags, err := spec.LoadAll(paths)

	for _, w := range diags.Warnings {
		log.Warnw(w.Message, "code", w.Code, "file", w.Location.Unit, "class", w.Location.Class)
	}

	if err != nil {
		return nil, err
	}

	if m != nil {
		for _, f := range files {
			if f.Module != "" {
				continue
			}

			rel, err := filepath.Rel(cfg.InputDir, f.Path)
			if err != nil {
				return nil, errors.Wrapf(err, "locating %s", f.Path)
			}

			if f.Module, err = m.IncludePrefix(filepath.ToSlash(rel)); err != nil {
				return nil, errors.Wrapf(err, "spec %s", f.Path)
			}
		}
	}

	units, reg, err := spec.Build(files, spec.BuildOptions{
		RootClass: cfg.Codegen.RootClass,
		InputDir:  cfg.InputDir,
	})
	if err != nil {
		return nil, err
	}

	log.Debugw("project loaded", "units", len(units), "classes", len(reg.Classes()))

	return &project{
		units: units,
		reg:   reg,
		store: gen.DirStore{OutputDir: cfg.OutputDir, BuildDir: cfg.BuildDir},
	}, nil
}

// digests hashes each unit's spec and include prefix together with the
// specs of the units it depends on, so editing a parent class dirties its
// children and a manifest change that moves the unit dirties it too.
func (p *project) digests() (map[string]string, error) {
	sources := make(map[string][]byte, len(p.units))

	for _, u := range p.units {
		data, err := os.ReadFile(u.Source)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", u.Source)
		}

		sources[u.Name] = data
	}

	out := make(map[string]string, len(p.units))

	for _, u := range p.units {
		parts := [][]byte{[]byte(u.Name), []byte(u.Module), sources[u.Name]}

		for _, dep := range spec.Dependencies(u, p.reg) {
			parts = append(parts, []byte(dep), sources[dep])
		}

		out[u.Name] = cache.Sum(parts...)
	}

	return out, nil
}

// outputs reads the current on-disk artifacts of u. Missing ones are nil.
func (p *project) outputs(u *gen.Unit) (map[string][]byte, error) {
	out := make(map[string][]byte, len(gen.ArtifactKinds))

	for _, kind := range gen.ArtifactKinds {
		rel := u.RelPath(kind)

		content, found, err := p.store.Read(kind, rel)
		if err != nil {
			return nil, err
		}

		if found {
			out[rel] = []byte(content)
		} else {
			out[rel] = nil
		}
	}

	return out, nil
}
