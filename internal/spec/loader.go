package spec

import (
	"bytes"
	"io"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"epigen/internal/errors"
)

// Format is the surface syntax of a spec file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
	FormatHCL
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatHCL:
		return "hcl"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DetectFormat picks the format from the file suffix.
func DetectFormat(name string) (Format, bool) {
	ext := specExt(name)
	if ext == "" {
		return 0, false
	}

	f, ok := specExts[strings.ToLower(ext)]

	return f, ok
}

// IsSpecFile reports whether name carries a spec suffix.
func IsSpecFile(name string) bool {
	_, ok := DetectFormat(name)
	return ok
}

// LoadFile loads and parses a spec file from the given path.
func LoadFile(filePath string) (*File, error) {
	format, ok := DetectFormat(filePath)
	if !ok {
		return nil, errors.Mark(errors.Newf("%s: not a spec file (expected .epi.yaml, .epi.toml, .epi.hcl or .epi.json)", filePath), errors.ErrInvalidSpec)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read spec file %s", filePath)
	}

	f, err := Parse(data, format, filePath)
	if err != nil {
		return nil, err
	}

	f.Path = filePath

	return f, nil
}

// Parse decodes data in the given format. Unknown keys are errors.
func Parse(data []byte, format Format, filename string) (*File, error) {
	var (
		f   *File
		err error
	)

	switch format {
	case FormatYAML:
		f, err = parseYAML(data)
	case FormatTOML:
		f, err = parseTOML(data)
	case FormatHCL:
		f, err = parseHCL(data, filename)
	case FormatJSON:
		f, err = parseJSON(data)
	default:
		err = errors.Newf("unsupported format %s", format)
	}

	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "failed to parse %s spec %s", format, filename), errors.ErrInvalidSpec)
	}

	applyDefaults(f)

	return f, nil
}

func parseYAML(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return &f, nil
}

func parseTOML(data []byte) (*File, error) {
	var f File

	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Newf("unknown key %s", undecoded[0])
	}

	return &f, nil
}

func parseJSON(data []byte) (*File, error) {
	var f File

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if f.Unit != "" {
		f.Unit = path.Clean(f.Unit)
	}

	for i := range f.Classes {
		classDefaults(&f.Classes[i])
	}
}

func classDefaults(c *ClassSpec) {
	for i := range c.Properties {
		p := &c.Properties[i]
		if p.Storage == "" {
			p.Storage = StorageField
		}

		if p.Storage == StorageCallback && p.Write == "" {
			p.Write = WriteCallback
		}
	}

	for i := range c.Classes {
		classDefaults(&c.Classes[i])
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
