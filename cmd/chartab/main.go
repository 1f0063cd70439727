// Package main provides the CLI entrypoint for chartab.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/chartab/internal/config"
	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/experiment"
	"github.com/verte-zerg/chartab/internal/logging"
	"github.com/verte-zerg/chartab/internal/model"
	"github.com/verte-zerg/chartab/internal/store"
	"github.com/verte-zerg/chartab/internal/tui"
)

const (
	defaultLogLevel = "info"
	defaultSnapshot = false
)

var (
	dataURL      string
	dataFile     string
	dataColumn   string
	dataTimeout  time.Duration
	dataSnapshot bool
	logFile      string
	logLevel     string

	experimentSeed int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chartab",
		Short:         "Bar vs. pie chart A/B test in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runExperimentCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataURL, "url", dataset.DefaultURL, "CSV export URL (Google Sheets share links are rewritten)")
	flags.StringVar(&dataFile, "file", "", "local CSV file used instead of --url")
	flags.StringVar(&dataColumn, "column", dataset.DefaultColumn, "CSV column holding the payment type")
	flags.DurationVar(&dataTimeout, "timeout", dataset.DefaultTimeout, "remote fetch timeout")
	flags.BoolVar(&dataSnapshot, "snapshot", defaultSnapshot, "keep a local copy of the last good download")
	flags.StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file path (- disables logging)")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().Int64Var(&experimentSeed, "seed", 0, "random seed for chart selection (0 = clock)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDataCmd())
	rootCmd.AddCommand(newChartCmd())

	return rootCmd
}

// app holds the shared runtime of every command.
type app struct {
	cfg    model.Config
	logger *zap.Logger
	store  *store.Store
	loader *dataset.Loader
}

func (a *app) Close() {
	if a.store != nil {
		if cerr := a.store.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	if a.logger != nil {
		// Sync fails on some file descriptors; nothing useful to do then.
		_ = a.logger.Sync()
	}
}

func openApp(cmd *cobra.Command) (*app, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)

	applyStringConfig(cmd, "url", &dataURL, fileCfg.Data.URL)
	applyStringConfig(cmd, "file", &dataFile, fileCfg.Data.File)
	applyStringConfig(cmd, "column", &dataColumn, fileCfg.Data.Column)
	if err := applyDurationConfig(cmd, "timeout", &dataTimeout, fileCfg.Data.Timeout); err != nil {
		return nil, err
	}
	applyBoolConfig(cmd, "snapshot", &dataSnapshot, fileCfg.Data.Snapshot)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	if cmd.Flags().Lookup("seed") != nil {
		applyInt64Config(cmd, "seed", &experimentSeed, fileCfg.Experiment.Seed)
	}

	cfg := model.Config{
		DataURL:  dataURL,
		DataFile: dataFile,
		Column:   dataColumn,
		Timeout:  dataTimeout,
		Snapshot: dataSnapshot,
		Seed:     experimentSeed,
	}
	if err := validateConfig(cfg, logLevel); err != nil {
		return nil, err
	}

	logger, err := logging.New(logFile, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	var snapshots dataset.SnapshotStore
	if cfg.Snapshot {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			// The experiment still works without a snapshot cache.
			logger.Warn("failed to open snapshot db", zap.Error(err))
		} else {
			a.store = st
			snapshots = st
		}
	}
	a.loader = dataset.NewLoader(resolveSource(cfg), snapshots, logger)
	return a, nil
}

func runExperimentCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	session := experiment.NewSession(
		experiment.WithChooser(experiment.NewRandomChooser(a.cfg.Seed)),
		experiment.WithLogger(a.logger),
	)
	a.logger.Info("experiment started", zap.String("session", session.ID()), zap.Int64("seed", a.cfg.Seed))

	m := tui.NewModel(a.loader, session,
		tui.WithLogger(a.logger),
		tui.WithLoadTimeout(a.cfg.Timeout+5*time.Second),
		tui.WithColor(os.Getenv("NO_COLOR") == ""),
	)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadData(ctx context.Context, a *app) (dataset.Result, model.PaymentCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout+5*time.Second)
	defer cancel()
	res := a.loader.Load(ctx)
	if res.Warning != "" {
		logErrln(res.Warning)
	}
	counts, err := dataset.Aggregate(res.Records)
	if err != nil {
		return res, nil, err
	}
	return res, counts, nil
}

func resolveSource(cfg model.Config) dataset.Source {
	if strings.TrimSpace(cfg.DataFile) != "" {
		return &dataset.FileSource{Path: cfg.DataFile, Column: cfg.Column}
	}
	return &dataset.HTTPSource{URL: cfg.DataURL, Column: cfg.Column, Timeout: cfg.Timeout}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# chartab configuration
# Uncomment a value to enable it. Environment variables override this file
# (%s, %s, %s, %s) and CLI flags override both.

[data]
# url = %q
# file = ""               # Local CSV file used instead of url
# column = %q        # CSV column holding the payment type
# timeout = %q           # Remote fetch timeout
# snapshot = %t          # Keep a local copy of the last good download

[experiment]
# seed = 0                # Random seed for chart selection (0 = clock)

[log]
# file = %q
# level = %q
`,
		config.EnvDataURL,
		config.EnvDataFile,
		config.EnvLogFile,
		config.EnvLogLevel,
		dataset.DefaultURL,
		dataset.DefaultColumn,
		dataset.DefaultTimeout.String(),
		defaultSnapshot,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config, level string) error {
	if strings.TrimSpace(cfg.DataFile) == "" && strings.TrimSpace(cfg.DataURL) == "" {
		return fmt.Errorf("--url or --file must be set")
	}
	if strings.TrimSpace(cfg.Column) == "" {
		return fmt.Errorf("--column must not be empty")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if _, err := logging.ParseLevel(level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
