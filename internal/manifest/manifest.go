// Package manifest reads the JSON module manifest and writes the JSON
// reports of the outputs, deps and inspect commands.
package manifest

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"epigen/internal/errors"
)

// DefaultName is the manifest file name looked up in the input directory.
const DefaultName = "epigen-manifest.json"

// Manifest lists the modules of a source tree. Module paths are relative
// to the input directory.
type Manifest struct {
	Modules []string `json:"modules"`
}

// Load reads a manifest file.
func Load(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", filePath)
	}

	var m Manifest

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", filePath)
	}

	for i, mod := range m.Modules {
		m.Modules[i] = cleanModule(mod)
	}

	return &m, nil
}

// Save writes m as indented JSON.
func Save(m *Manifest, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create manifest %s", filePath)
	}
	defer f.Close()

	return WriteJSON(f, m)
}

func cleanModule(m string) string {
	return strings.Trim(path.Clean(filepath.ToSlash(m)), "/")
}

// ModuleOf returns the innermost module containing rel, a slash-separated
// path relative to the input directory.
func (m *Manifest) ModuleOf(rel string) (string, bool) {
	mods := append([]string(nil), m.Modules...)
	sort.Sort(sort.Reverse(sort.StringSlice(mods)))

	for _, mod := range mods {
		if mod == "." || strings.HasPrefix(rel, mod+"/") {
			return mod, true
		}
	}

	return "", false
}

// IncludePrefix returns the directory a unit's bundle is included from:
// the last element of its module followed by the unit's directory inside
// the module. For module "engine/core" and rel "engine/core/math/Vec.epi.yaml"
// that is "core/math".
func (m *Manifest) IncludePrefix(rel string) (string, error) {
	mod, ok := m.ModuleOf(rel)
	if !ok {
		return "", errors.WithHint(
			errors.Newf("%s does not belong to any module", rel),
			"add its directory to the manifest modules")
	}

	inner := rel
	if mod != "." {
		inner = strings.TrimPrefix(rel, mod+"/")
	}

	prefix := path.Dir(path.Join(path.Base(mod), inner))
	if prefix == "." {
		return "", nil
	}

	return prefix, nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")

	return enc.Encode(v)
}
