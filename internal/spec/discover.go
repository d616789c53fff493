package spec

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"epigen/internal/diagnostic"
	"epigen/internal/errors"
)

// Discover lists the spec files under inputDir, sorted. A file is skipped
// when its slash-separated relative path or base name matches one of the
// ignore globs. With modules set, only files inside those module
// directories are kept.
func Discover(inputDir string, ignore, modules []string) ([]string, error) {
	for _, pattern := range ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, errors.Wrapf(err, "ignore pattern %q", pattern)
		}
	}

	var found []string

	err := filepath.WalkDir(inputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !IsSpecFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(inputDir, p)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		if ignored(rel, ignore) || !inModules(rel, modules) {
			return nil
		}

		found = append(found, p)

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "discovering spec files under %s", inputDir)
	}

	sort.Strings(found)

	return found, nil
}

func ignored(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}

		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}

	return false
}

func inModules(rel string, modules []string) bool {
	if len(modules) == 0 {
		return true
	}

	for _, m := range modules {
		m = strings.Trim(path.Clean(filepath.ToSlash(m)), "/")
		if m == "." || m == "" || strings.HasPrefix(rel, m+"/") {
			return true
		}
	}

	return false
}

// LoadAll loads and validates every path. Warnings are returned even when
// loading fails; the error joins every load failure and error diagnostic.
func LoadAll(paths []string) ([]*File, *diagnostic.Diagnostics, error) {
	diags := &diagnostic.Diagnostics{}

	var (
		files []*File
		errs  []error
	)

	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		diags.Merge(*Validate(f))
		files = append(files, f)
	}

	errs = append(errs, diags.Error())

	return files, diags, errors.Join(errs...)
}
