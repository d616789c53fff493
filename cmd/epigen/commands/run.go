package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"

	"epigen/internal/cache"
	"epigen/internal/config"
	"epigen/internal/errors"
	"epigen/internal/gen"
	"epigen/internal/logger"
)

// ErrOutOfDate is returned by check when any artifact differs from disk.
var ErrOutOfDate = errors.New("generated artifacts are out of date")

// summary counts what one generation pass did.
type summary struct {
	Units   int
	Skipped int
	Failed  int
	Written int
	Stale   int
}

func (s summary) String() string {
	return fmt.Sprintf("%d units: %d skipped, %d failed, %d files written", s.Units, s.Skipped, s.Failed, s.Written)
}

// generate regenerates every unit the build cache does not vouch for and
// writes the changed artifacts. Failed units are reported together after
// the others were written.
func generate(ctx context.Context, cfg *config.Config) (summary, error) {
	log := logger.Named("generate")

	p, err := loadProject(cfg)
	if err != nil {
		return summary{}, err
	}

	c, err := openCache(cfg)
	if err != nil {
		return summary{}, err
	}

	digests, err := p.digests()
	if err != nil {
		return summary{}, err
	}

	s := summary{Units: len(p.units)}

	var stale []*gen.Unit

	for _, u := range p.units {
		outputs, err := p.outputs(u)
		if err != nil {
			return s, err
		}

		if c.Fresh(u.Name, digests[u.Name], outputs) {
			log.Infow("unit unchanged, skipped", "unit", u.Name)
			s.Skipped++

			continue
		}

		stale = append(stale, u)
	}

	results, genErr := gen.NewGenerator(cfg.GeneratorConfig(), p.store).Generate(ctx, stale)

	s.Written, err = gen.WriteFiles(p.store, results)
	if err != nil {
		return s, errors.Join(err, genErr)
	}

	for _, r := range results {
		if r == nil {
			s.Failed++
			continue
		}

		outputs := make(map[string][]byte, len(r.Files))
		for _, f := range r.Files {
			outputs[f.Filename] = f.Content
		}

		c.Record(r.Unit.Name, digests[r.Unit.Name], outputs)
	}

	names := make([]string, 0, len(p.units))
	for _, u := range p.units {
		names = append(names, u.Name)
	}

	c.Retain(names)

	if err := c.Save(); err != nil {
		return s, errors.Join(err, genErr)
	}

	return s, genErr
}

// check generates every unit in memory and writes a unified diff to w for
// each artifact that differs from disk. Nothing is written and the build
// cache is not consulted.
func check(ctx context.Context, cfg *config.Config, w io.Writer) (summary, error) {
	p, err := loadProject(cfg)
	if err != nil {
		return summary{}, err
	}

	results, genErr := gen.NewGenerator(cfg.GeneratorConfig(), p.store).Generate(ctx, p.units)

	s := summary{Units: len(p.units)}

	for _, r := range results {
		if r == nil {
			s.Failed++
			continue
		}

		for _, f := range r.Files {
			if !f.Changed {
				continue
			}

			s.Stale++

			prior, _, err := p.store.Read(f.Kind, f.Filename)
			if err != nil {
				return s, err
			}

			if err := writeDiff(w, p.store.Locate(f.Kind, f.Filename), prior, string(f.Content)); err != nil {
				return s, err
			}
		}
	}

	if genErr != nil {
		return s, genErr
	}

	if s.Stale > 0 {
		return s, errors.WithHintf(errors.Wrapf(ErrOutOfDate, "%d artifacts differ", s.Stale), "run epigen generate")
	}

	return s, nil
}

func writeDiff(w io.Writer, name, before, after string) error {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return errors.Wrapf(err, "diffing %s", name)
	}

	_, err = io.WriteString(w, diff)

	return err
}

// openCache returns the build cache, or nil when caching is disabled.
func openCache(cfg *config.Config) (*cache.Cache, error) {
	if !cfg.Caching {
		return nil, nil
	}

	fingerprint, err := cfg.Fingerprint()
	if err != nil {
		return nil, err
	}

	return cache.Open(cfg.CachePath(), fingerprint)
}
