package common

import (
	"os"
	"path/filepath"

	"epigen/internal/errors"
)

// File permission constants.
const (
	DirPerm  = 0o755
	FilePerm = 0o644
)

// WriteFileAtomic writes content to a temporary sibling, flushes it to disk
// and renames it over path, creating parent directories as needed.
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for %s", path)
	}

	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "syncing %s", path)
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}

	if err := os.Chmod(tmpName, FilePerm); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}

	return nil
}
