package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/cupline/internal/adapters/report"
	"github.com/okian/cupline/internal/adapters/repository"
	service "github.com/okian/cupline/internal/app"
	"github.com/okian/cupline/internal/config"
	"github.com/okian/cupline/internal/domain/normalize"
	"github.com/okian/cupline/internal/domain/role"
	"github.com/okian/cupline/pkg/logger"
)

// Linker flags are set at release build time.
var (
	version = "dev"
	commit  = "none"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string
	noColor    bool
	precision  int
	workers    int
	benchmarks string
	database   string
}

// newRootCmd builds the command tree. Each call returns a fresh tree so tests
// can execute commands in isolation.
func newRootCmd() *cobra.Command {
	gf := &globalFlags{}

	root := &cobra.Command{
		Use:   "cupline",
		Short: "Compare hockey rosters against championship benchmarks.",
		Long: `Cupline classifies skaters into depth-chart roles, builds per-role benchmarks
from historical championship rosters and scores how far each player of a
roster falls short of the benchmark for their role.`,
		Version:            fmt.Sprintf("%s (%s)", version, commit),
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.configPath, "config", "", "Path to a YAML config file (overrides "+config.EnvConfigPath+")")
	pf.StringVar(&gf.logLevel, "log-level", "", "Log level: debug or info or warn or error")
	pf.StringVar(&gf.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVarP(&gf.format, "output", "o", string(report.FormatTable), "Output format: table or json or csv")
	pf.BoolVar(&gf.noColor, "no-color", false, "Disable colored severity labels")
	pf.IntVar(&gf.precision, "precision", 3, "Decimal precision for numeric columns")
	pf.IntVar(&gf.workers, "workers", 0, "Number of scoring workers (0 = config value)")
	pf.StringVar(&gf.benchmarks, "benchmarks", "", "Benchmark file path (.yaml, .yml or .json)")
	pf.StringVar(&gf.database, "db", "", "SQLite stats database path")

	root.AddCommand(
		newServeCmd(gf),
		newBenchmarksCmd(gf),
		newEvaluateCmd(gf),
		newImportCmd(gf),
	)
	return root
}

// setup loads configuration, applies flag overrides and initializes logging.
func (gf *globalFlags) setup(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	path := gf.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}
	cfg, err := config.LoadFrom(ctx, path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = gf.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = gf.logFormat
	}
	if flags.Changed("workers") && gf.workers > 0 {
		cfg.WorkerCount = gf.workers
	}
	if flags.Changed("benchmarks") {
		cfg.BenchmarkPath = gf.benchmarks
	}
	if flags.Changed("db") {
		cfg.StatsDBPath = gf.database
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, err
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// reportOptions translates output flags into renderer options.
func (gf *globalFlags) reportOptions(explain bool) (report.Options, error) {
	format, err := report.ParseFormat(gf.format)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		Format:    format,
		UseColors: !gf.noColor && !color.NoColor,
		Precision: gf.precision,
		Explain:   explain,
	}, nil
}

// newService wires the benchmark file and an optional stat source into a service.
func newService(cfg *config.Config, source service.StatSource) (*service.Service, *repository.BenchmarkFile, error) {
	file, err := repository.NewBenchmarkFile(cfg.BenchmarkPath,
		repository.WithFileLogger(logger.Named("benchmark-file")),
	)
	if err != nil {
		return nil, nil, err
	}
	unit, err := normalize.ParseIceTimeUnit(cfg.IceTimeUnit)
	if err != nil {
		return nil, nil, err
	}
	builder, err := role.ParseStrategy(cfg.BuilderClassifier)
	if err != nil {
		return nil, nil, err
	}
	scorer, err := role.ParseStrategy(cfg.ScorerClassifier)
	if err != nil {
		return nil, nil, err
	}
	weights, err := cfg.RoleWeights()
	if err != nil {
		return nil, nil, err
	}

	opts := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithBenchmarkRepository(file),
		service.WithMinGamesPlayed(cfg.MinGamesPlayed),
		service.WithDefaultSalary(cfg.DefaultSalaryMillions),
		service.WithIceTimeUnit(unit),
		service.WithBuilderStrategy(builder),
		service.WithScorerStrategy(scorer),
		service.WithPositionWeights(weights),
	}
	if source != nil {
		opts = append(opts, service.WithStatSource(source))
	}
	svc, err := service.New(opts...)
	if err != nil {
		return nil, nil, err
	}
	return svc, file, nil
}

// openStats opens the SQLite stat source named by cfg.
func openStats(ctx context.Context, cfg *config.Config) (*repository.SQLiteSource, error) {
	src, err := repository.OpenSQLite(ctx, cfg.StatsDBPath,
		repository.WithSQLiteLogger(logger.Named("stats-db")),
	)
	if err != nil {
		return nil, fmt.Errorf("open stats database %s: %w", cfg.StatsDBPath, err)
	}
	return src, nil
}
