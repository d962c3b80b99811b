package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"stopwatch_tui/internal"
	"stopwatch_tui/internal/config"
	"stopwatch_tui/internal/logging"
	"stopwatch_tui/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

type rootFlags struct {
	configPath string
	dbPath     string
	driver     string
	logLevel   string
}

// NewRootCmd builds the command tree around deps.
func NewRootCmd(deps *Deps) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "A stopwatch activity logger",
		Long: `stopwatch logs start/stop pairs as timestamped records.

Press Enter to start a session and Enter again to stop it. Each start and
stop appends a record carrying the note typed in the input field. Ctrl+X
clears every record.

Usage:
  stopwatch                 Open the stopwatch screen
  stopwatch list            Print stored records
  stopwatch clear           Remove all stored records`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(deps, flags)
		},
	}
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)
	rootCmd.SetVersionTemplate(
		"stopwatch version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stopwatch/config.toml)")
	pf.StringVar(&flags.dbPath, "db", "", "data file for the record store")
	pf.StringVar(&flags.driver, "driver", "", "storage driver: sqlite, file or memory")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newListCmd(deps, flags))
	rootCmd.AddCommand(newClearCmd(deps, flags))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	deps := DefaultDeps()
	err := NewRootCmd(deps).Execute()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
	}
	return err
}

// env is what every command opens before doing its work.
type env struct {
	cfg    config.Config
	logger *log.Logger
	store  store.Store
	closer io.Closer
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Error("failed to close store", "err", err)
	}
	_ = e.closer.Close()
}

func openEnv(flags *rootFlags) (*env, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err = cfg.Override(flags.driver, flags.dbPath, flags.logLevel)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	logger.Debug("store opened", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)

	return &env{cfg: cfg, logger: logger, store: st, closer: closer}, nil
}

func runScreen(deps *Deps, flags *rootFlags) error {
	e, err := openEnv(flags)
	if err != nil {
		return err
	}
	defer e.Close()

	interval, err := e.cfg.Interval()
	if err != nil {
		return err
	}

	m, err := internal.NewModel(e.store, internal.Options{
		Key:      e.cfg.Storage.Key,
		Interval: interval,
		Logger:   e.logger,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	if err := deps.RunProgram(m); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
