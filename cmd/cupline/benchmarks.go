package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/cupline/internal/adapters/report"
	"github.com/okian/cupline/internal/domain/model"
	"github.com/okian/cupline/internal/domain/role"
	"github.com/okian/cupline/internal/domain/types"
)

func newBenchmarksCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmarks",
		Short: "Build and inspect championship role benchmarks",
		Long: `Manage the per-role benchmark table derived from championship rosters.

Subcommands:
  build - Recompute benchmarks from the stats database and save them
  show  - Print the saved benchmarks, optionally for a single role`,
	}
	cmd.AddCommand(newBenchmarksBuildCmd(gf), newBenchmarksShowCmd(gf))
	return cmd
}

func newBenchmarksBuildCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Recompute benchmarks from championship rosters",
		Long: `Read every championship roster from the stats database, classify qualified
players into roles and write the resulting benchmark table to the benchmark
file. The previous file is replaced atomically.

Examples:
  cupline benchmarks build --db ./cupline.db --benchmarks ./benchmarks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := gf.setup(ctx, cmd)
			if err != nil {
				return err
			}
			opts, err := gf.reportOptions(false)
			if err != nil {
				return err
			}
			stats, err := openStats(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = stats.Close() }()

			svc, file, err := newService(cfg, stats)
			if err != nil {
				return err
			}
			rep, err := svc.RebuildBenchmarks(ctx)
			if err != nil {
				return err
			}
			return report.WriteBuildReport(cmd.OutOrStdout(), rep, file.Path(), opts)
		},
	}
}

func newBenchmarksShowCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [role]",
		Short: "Print saved benchmarks",
		Long: `Print the benchmark table from the benchmark file in canonical role order.
Pass a role (1C..4C, TOP6_W, MID6_W, BOT6_W, 1D..6D, STARTING_G, BACKUP_G)
to print just that row.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r model.Role
			if len(args) == 1 {
				var ok bool
				if r, ok = model.ParseRole(args[0]); !ok {
					return fmt.Errorf("%w: %q", role.ErrUnknownRole, args[0])
				}
			}
			ctx := cmd.Context()
			cfg, err := gf.setup(ctx, cmd)
			if err != nil {
				return err
			}
			opts, err := gf.reportOptions(false)
			if err != nil {
				return err
			}
			svc, _, err := newService(cfg, nil)
			if err != nil {
				return err
			}
			if err := svc.LoadBenchmarks(ctx); err != nil {
				return err
			}

			entries := types.BenchmarkEntries(svc.Benchmarks())
			if len(args) == 1 {
				b, err := svc.Benchmark(ctx, r)
				if err != nil {
					return err
				}
				entries = []types.BenchmarkEntry{{Role: r, Benchmark: b}}
			}
			return report.WriteBenchmarks(cmd.OutOrStdout(), entries, opts)
		},
	}
}
