package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"epigen/internal/errors"
	"epigen/internal/gen"
	"epigen/internal/hashid"
	"epigen/internal/logger"
	"epigen/internal/manifest"
	"epigen/internal/spec"
	"epigen/internal/watch"
)

func newGenerateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate and merge the artifacts of every spec file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := generate(cmd.Context(), a.cfg)
			fmt.Fprintln(cmd.OutOrStdout(), s)

			return err
		},
	}
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report artifacts that generate would change, as unified diffs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := check(cmd.Context(), a.cfg, cmd.OutOrStdout())
			return err
		},
	}
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Generate, then regenerate whenever a spec file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.Named("watch")

			regenerate := func(ctx context.Context, changed []string) error {
				if len(changed) > 0 {
					log.Infow("regenerating", "changed", changed)
				}

				s, err := generate(ctx, a.cfg)
				if err != nil {
					PrintError(cmd.ErrOrStderr(), err)
					return nil
				}

				fmt.Fprintln(cmd.OutOrStdout(), s)

				return nil
			}

			_ = regenerate(ctx, nil)

			w, err := watch.New(a.cfg.InputDir, a.cfg.Watch.Debounce, func(p string) bool {
				return spec.IsSpecFile(filepath.Base(p))
			})
			if err != nil {
				return err
			}
			defer w.Close()

			log.Infow("watching", "dir", a.cfg.InputDir, "debounce", a.cfg.Watch.Debounce)

			return w.Run(ctx, regenerate)
		},
	}
}

func newHashCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <name>...",
		Short: "Print the identifier hash of each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", hashid.Of(name).Format(a.cfg.Codegen.PadIDs), name)
			}

			return nil
		},
	}
}

func newInspectCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the class and enum descriptors built from the specs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProject(a.cfg)
			if err != nil {
				return err
			}

			report := manifest.Inspect(p.reg, a.cfg.Codegen.PadIDs)

			switch format {
			case "json":
				return manifest.WriteJSON(cmd.OutOrStdout(), report)
			case "spew":
				dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
				dumper.Fdump(cmd.OutOrStdout(), report)

				return nil
			default:
				return errors.WithHint(errors.Newf("unknown format %q", format), "use json or spew")
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or spew")

	return cmd
}

func newOutputsCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "outputs",
		Short: "List the artifact paths generate would write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProject(a.cfg)
			if err != nil {
				return err
			}

			entries := outputEntries(p)

			if asJSON {
				return manifest.WriteJSON(cmd.OutOrStdout(), entries)
			}

			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.Path)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func newDepsCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List the spec files each unit is generated from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProject(a.cfg)
			if err != nil {
				return err
			}

			entries := depsEntries(p)

			if asJSON {
				return manifest.WriteJSON(cmd.OutOrStdout(), entries)
			}

			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", e.Unit, strings.Join(append([]string{e.Source}, e.Depends...), " "))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func outputEntries(p *project) []manifest.OutputEntry {
	entries := make([]manifest.OutputEntry, 0, len(p.units)*len(gen.ArtifactKinds))

	for _, u := range p.units {
		for _, kind := range gen.ArtifactKinds {
			entries = append(entries, manifest.OutputEntry{
				Unit: u.Name,
				Kind: kind.String(),
				Path: p.store.Locate(kind, u.RelPath(kind)),
			})
		}
	}

	return entries
}

func depsEntries(p *project) []manifest.DepsEntry {
	sources := make(map[string]string, len(p.units))
	for _, u := range p.units {
		sources[u.Name] = u.Source
	}

	entries := make([]manifest.DepsEntry, 0, len(p.units))

	for _, u := range p.units {
		e := manifest.DepsEntry{Unit: u.Name, Source: u.Source}

		for _, dep := range spec.Dependencies(u, p.reg) {
			e.Depends = append(e.Depends, sources[dep])
		}

		entries = append(entries, e)
	}

	return entries
}
