// Package config loads epigen settings from defaults, an epigen.toml file,
// EPIGEN_* environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"epigen/internal/cache"
	"epigen/internal/errors"
	"epigen/internal/gen"
	"epigen/internal/model"
	"epigen/internal/region"
	"epigen/internal/watch"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "epigen.toml"

// EnvPrefix prefixes environment overrides, e.g. EPIGEN_CODEGEN_PAD_IDS.
const EnvPrefix = "EPIGEN"

// Config is the resolved configuration of a run.
type Config struct {
	InputDir  string        `mapstructure:"input_dir"`
	OutputDir string        `mapstructure:"output_dir"`
	BuildDir  string        `mapstructure:"build_dir"`
	Manifest  string        `mapstructure:"manifest"`
	Ignore    []string      `mapstructure:"ignore"`
	Jobs      int           `mapstructure:"jobs"`
	Caching   bool          `mapstructure:"caching"`
	CacheFile string        `mapstructure:"cache_file"`
	Codegen   CodegenConfig `mapstructure:"codegen"`
	Log       LogConfig     `mapstructure:"log"`
	Watch     WatchConfig   `mapstructure:"watch"`
}

// CodegenConfig holds the settings that change generated text.
type CodegenConfig struct {
	RootClass      string `mapstructure:"root_class"`
	PadIDs         bool   `mapstructure:"pad_ids"`
	NamespaceBegin string `mapstructure:"namespace_begin"`
	NamespaceEnd   string `mapstructure:"namespace_end"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	JSON      bool `mapstructure:"json"`
	Verbosity int  `mapstructure:"verbosity"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	defaults := gen.DefaultGeneratorConfig()

	v.SetDefault("input_dir", ".")
	v.SetDefault("output_dir", ".")
	v.SetDefault("build_dir", "build")
	v.SetDefault("manifest", "")
	v.SetDefault("ignore", []string{})
	v.SetDefault("jobs", runtime.NumCPU())
	v.SetDefault("caching", true)
	v.SetDefault("cache_file", "")

	v.SetDefault("codegen.root_class", model.DefaultRoot)
	v.SetDefault("codegen.pad_ids", false)
	v.SetDefault("codegen.namespace_begin", defaults.NamespaceBegin)
	v.SetDefault("codegen.namespace_end", defaults.NamespaceEnd)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("watch.debounce", watch.DefaultDebounce)
}

// New builds a viper instance with defaults, the config file and the
// environment. An explicit configFile must exist; the implicit epigen.toml
// in the working directory is optional.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "failed to read config %s", v.ConfigFileUsed())
		}
	}

	return v, nil
}

// Load unmarshals and checks the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if c.InputDir == "" {
		return nil, errors.WithHint(errors.New("input_dir is empty"), "pass --input or set input_dir in epigen.toml")
	}

	if c.Jobs < 1 {
		c.Jobs = 1
	}

	if c.Codegen.RootClass == "" {
		c.Codegen.RootClass = model.DefaultRoot
	}

	return &c, nil
}

// CachePath is cache_file, or the default cache name inside build_dir.
func (c *Config) CachePath() string {
	if c.CacheFile != "" {
		return c.CacheFile
	}

	return filepath.Join(c.BuildDir, cache.DefaultName)
}

// GeneratorConfig derives the generator settings.
func (c *Config) GeneratorConfig() gen.GeneratorConfig {
	return gen.GeneratorConfig{
		PadIDs:         c.Codegen.PadIDs,
		NamespaceBegin: c.Codegen.NamespaceBegin,
		NamespaceEnd:   c.Codegen.NamespaceEnd,
		Markers:        region.DefaultMarkers,
		Jobs:           c.Jobs,
	}
}

// Fingerprint digests every setting that changes generated text, so a
// cache written under other settings is discarded.
func (c *Config) Fingerprint() (string, error) {
	return cache.Fingerprint(struct {
		Codegen   CodegenConfig
		OutputDir string
		BuildDir  string
		Manifest  string
	}{c.Codegen, c.OutputDir, c.BuildDir, c.Manifest})
}
