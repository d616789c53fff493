package gen

import (
	"epigen/internal/errors"
	"epigen/internal/logger"
)

// WriteFiles hands every changed artifact of the successful units to store.
// Unchanged artifacts are not rewritten so their timestamps stay put.
//
// A unit is written as a whole: when one of its artifacts cannot be stored,
// the artifacts already written for that unit are restored to their prior
// content, or removed when they did not exist, and WriteFiles stops.
func WriteFiles(store ArtifactStore, results []*UnitResult) (written int, err error) {
	for _, r := range results {
		if r == nil {
			continue
		}

		n, err := writeUnit(store, r)
		if err != nil {
			return written, errors.Wrapf(err, "unit %s", r.Unit.Name)
		}

		written += n
	}

	return written, nil
}

func writeUnit(store ArtifactStore, r *UnitResult) (int, error) {
	var done []GeneratedFile

	for _, f := range r.Files {
		if !f.Changed {
			continue
		}

		if err := store.Write(f.Kind, f.Filename, f.Content); err != nil {
			if rerr := rollback(store, done); rerr != nil {
				err = errors.Join(err, rerr)
			}

			return 0, err
		}

		done = append(done, f)
	}

	for _, f := range done {
		logger.Logger.Infow("wrote artifact", "file", f.Filename, "kind", f.Kind.String())
	}

	return len(done), nil
}

// rollback undoes the writes of done, newest first.
func rollback(store ArtifactStore, done []GeneratedFile) error {
	var err error

	for i := len(done) - 1; i >= 0; i-- {
		f := done[i]

		var ferr error
		if f.Previous != nil {
			ferr = store.Write(f.Kind, f.Filename, f.Previous)
		} else {
			ferr = store.Remove(f.Kind, f.Filename)
		}

		if ferr != nil {
			err = errors.Join(err, errors.Wrapf(ferr, "restoring %s", f.Filename))
			continue
		}

		logger.Logger.Warnw("rolled back artifact", "file", f.Filename, "kind", f.Kind.String())
	}

	return err
}
