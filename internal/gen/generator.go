package gen

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"epigen/internal/errors"
	"epigen/internal/logger"
	"epigen/internal/merge"
	"epigen/internal/region"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PadIDs renders hash constants with a fixed 8-digit width.
	PadIDs bool
	// NamespaceBegin and NamespaceEnd bracket declarations and definitions.
	NamespaceBegin string
	NamespaceEnd   string
	// Markers are the region marker macro names.
	Markers region.Markers
	// Jobs bounds how many units are generated at once.
	Jobs int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		NamespaceBegin: "EPI_NAMESPACE_BEGIN()",
		NamespaceEnd:   "EPI_NAMESPACE_END()",
		Markers:        region.DefaultMarkers,
		Jobs:           runtime.NumCPU(),
	}
}

// Generator emits and merges the artifacts of units. It only reads the
// model, so one Generator can serve every unit of a run concurrently.
type Generator struct {
	config GeneratorConfig
	store  ArtifactStore
}

// NewGenerator creates a Generator that reads prior artifacts from store.
func NewGenerator(config GeneratorConfig, store ArtifactStore) *Generator {
	if config.Jobs < 1 {
		config.Jobs = 1
	}

	if config.Markers == (region.Markers{}) {
		config.Markers = region.DefaultMarkers
	}

	return &Generator{config: config, store: store}
}

// GeneratedFile is one merged artifact.
type GeneratedFile struct {
	Kind ArtifactKind
	// Filename is relative to the root directory of Kind.
	Filename string
	Content  []byte
	// Prior is the state the artifact was in before merging: NotFound or Parsed.
	Prior merge.State
	// Previous is the prior artifact text when Prior is Parsed.
	Previous []byte
	// Changed reports whether Content differs from the prior artifact.
	Changed bool
	Report  merge.Report
}

// UnitResult holds the three artifacts of a unit.
type UnitResult struct {
	Unit  *Unit
	Files []GeneratedFile
}

// Changed reports whether any artifact of the unit differs from disk.
func (r *UnitResult) Changed() bool {
	for _, f := range r.Files {
		if f.Changed {
			return true
		}
	}

	return false
}

// GenerateUnit emits, merges and renders every artifact of u. Nothing is
// returned unless all three succeed.
func (g *Generator) GenerateUnit(u *Unit) (*UnitResult, error) {
	log := logger.Named("gen").With("unit", u.Name)

	result := &UnitResult{Unit: u}

	for _, kind := range ArtifactKinds {
		rel := u.RelPath(kind)

		fresh, err := g.Emit(u, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %s: emit %s", u.Name, rel)
		}

		prior, found, err := g.store.Read(kind, rel)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %s: read prior %s", u.Name, rel)
		}

		artifact := merge.NewArtifact(rel, g.config.Markers)
		if err := artifact.Load(prior, found); err != nil {
			return nil, err
		}

		state := artifact.State()

		out, err := artifact.Merge(fresh)
		if err != nil {
			return nil, err
		}

		logDecisions(log, rel, artifact.Report())

		file := GeneratedFile{
			Kind:     kind,
			Filename: rel,
			Content:  []byte(out),
			Prior:    state,
			Changed:  !found || prior != out,
			Report:   artifact.Report(),
		}

		if found {
			file.Previous = []byte(prior)
		}

		result.Files = append(result.Files, file)
	}

	return result, nil
}

// Generate runs GenerateUnit for every unit, at most Jobs at a time.
// Results keep the order of units; a failed unit leaves a nil entry and its
// error is joined into the returned error, other units are unaffected.
func (g *Generator) Generate(ctx context.Context, units []*Unit) ([]*UnitResult, error) {
	results := make([]*UnitResult, len(units))
	errs := make([]error, len(units))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.config.Jobs)

	for i, u := range units {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := g.GenerateUnit(u)
			if err != nil {
				errs[i] = err
				return nil
			}

			results[i] = res

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}

	return results, errors.Join(errs...)
}

func logDecisions(log *zap.SugaredLogger, rel string, report merge.Report) {
	for _, d := range report.Decisions {
		switch d.Action {
		case merge.Kept:
			log.Debugw("region preserved", "file", rel, "region", d.Path, "bytes", d.Bytes)
		case merge.Seeded:
			log.Debugw("region seeded", "file", rel, "region", d.Path)
		case merge.Placeholder:
			log.Debugw("region left empty", "file", rel, "region", d.Path)
		case merge.Dropped:
			log.Debugw("region dropped", "file", rel, "region", d.Path, "bytes", d.Bytes)
		case merge.Discarded:
			log.Warnw("hand-written text outside regions discarded", "file", rel, "after", d.Path, "bytes", d.Bytes)
		}
	}
}
