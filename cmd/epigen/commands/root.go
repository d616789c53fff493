// Package commands implements the epigen command line.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"epigen/internal/config"
	"epigen/internal/errors"
	"epigen/internal/logger"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	configFile string
	cfg        *config.Config
}

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"input":      "input_dir",
	"output":     "output_dir",
	"build-dir":  "build_dir",
	"manifest":   "manifest",
	"ignore":     "ignore",
	"jobs":       "jobs",
	"cache":      "caching",
	"cache-file": "cache_file",
	"root-class": "codegen.root_class",
	"pad-ids":    "codegen.pad_ids",
	"verbose":    "log.verbosity",
	"log-json":   "log.json",
	"debounce":   "watch.debounce",
}

// NewRootCommand builds the epigen command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "epigen",
		Short: "Reflection and serialization code generator",
		Long: `epigen reads *.epi.{yaml,toml,hcl,json} class spec files and emits, per
spec file, a declaration (.h), a macro bundle (.hxx) and a definition (.cxx).

Regenerating keeps hand-written content inside preserved regions
(EPI_GENREGION_BEGIN/END) and replaces everything the generator owns.

Configuration is read from epigen.toml, EPIGEN_* environment variables and
flags, in increasing order of precedence.

Examples:
  epigen generate -i src -o include --build-dir build
  epigen check                 # exit 1 and print diffs when out of date
  epigen watch -v
  epigen hash PName Object`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd.Root().PersistentFlags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default: ./epigen.toml when present)")
	flags.StringP("input", "i", ".", "Directory searched for spec files")
	flags.StringP("output", "o", ".", "Directory receiving .h declarations")
	flags.String("build-dir", "build", "Directory receiving .hxx and .cxx artifacts")
	flags.String("manifest", "", "JSON module manifest limiting discovery and setting include prefixes")
	flags.StringSlice("ignore", nil, "Glob of spec files to skip (repeatable)")
	flags.IntP("jobs", "j", 0, "Units generated in parallel (default: number of CPUs)")
	flags.Bool("cache", true, "Skip units whose specs and artifacts are unchanged")
	flags.String("cache-file", "", "Build cache path (default: <build-dir>/epigen-cache.bin)")
	flags.String("root-class", "", "Implicit root class of every hierarchy")
	flags.Bool("pad-ids", false, "Render IDs as fixed-width 8 digit hex")
	flags.CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.Bool("log-json", false, "Log as JSON")
	flags.Duration("debounce", 0, "Quiet period before watch regenerates")

	root.AddCommand(
		newGenerateCommand(a),
		newCheckCommand(a),
		newWatchCommand(a),
		newHashCommand(a),
		newInspectCommand(a),
		newOutputsCommand(a),
		newDepsCommand(a),
	)

	return root
}

// configure layers flags over the config file and environment, then
// installs the logger.
func (a *app) configure(flags *pflag.FlagSet) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}

	if err := bindFlags(v, flags); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Logger.Debugw("config loaded", "file", used)
	}

	a.cfg = cfg

	return nil
}

// bindFlags binds only the flags set on the command line, so defaults of
// unset flags never shadow the config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "binding --%s", name)
		}
	}

	return nil
}

// PrintError writes err and every hint attached to it.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}
