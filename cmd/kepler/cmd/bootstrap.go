package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql"
	"github.com/msto63/keplerkv/foundation/kql/executor"
	"github.com/msto63/keplerkv/foundation/kql/registry"
	"github.com/msto63/keplerkv/foundation/kql/store"
	"github.com/msto63/keplerkv/internal/console"
	"github.com/msto63/keplerkv/internal/history"
	"github.com/msto63/keplerkv/pkg/core/config"
	"github.com/msto63/keplerkv/pkg/core/logging"
)

// appOptions selects the front end the engine reports to. Without output
// and confirmer a console printer and a line confirmer on confirmIn are used.
type appOptions struct {
	output    executor.Output
	confirmer executor.Confirmer
	confirmIn *bufio.Reader
}

// app holds everything a session needs
type app struct {
	cfg     *config.Config
	logger  *kvlog.Logger
	printer *console.Printer
	journal history.Store
	engine  *kql.Engine

	closeLog func() error
}

// loadConfig discovers the configuration and applies command line flags
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.Discover(cfgFile)
	if err != nil {
		return nil, path, err
	}
	if silent {
		cfg.REPL.Silent = true
	}
	if verbose {
		cfg.Log.Level = kvlog.LevelDebug.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, path, nil
}

func newApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.NewLogger(logging.LoggerConfig{
		Name:   "kepler",
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	kvlog.SetDefault(logger)
	logger.Debug("configuration loaded", kvlog.Fields{
		"path":      path,
		"data_dir":  cfg.General.DataDir,
		"log_level": logger.GetLevel().String(),
	})

	a := &app{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		printer: console.New(console.Options{
			Out:    cmd.OutOrStdout(),
			Err:    cmd.ErrOrStderr(),
			Silent: cfg.REPL.Silent,
			Color:  cfg.ColorEnabled(),
		}),
	}

	reg, err := registry.New(registry.Options{Logger: logger, Aliases: cfg.REPL.Aliases})
	if err != nil {
		a.Close()
		return nil, err
	}

	var journal kql.Journal
	if cfg.HistoryEnabled() {
		a.journal, err = history.Open(cmd.Context(), history.Config{
			Backend:   cfg.History.Backend,
			Path:      cfg.History.Path,
			Retention: cfg.History.Retention.Duration,
		})
		if err != nil {
			// The session works without a journal
			logger.WarnWithErr("query history disabled", err)
		} else {
			journal = a.journal
		}
	}

	output := opts.output
	if output == nil {
		output = a.printer
	}
	confirmer := opts.confirmer
	if confirmer == nil && opts.confirmIn != nil {
		confirmer = console.NewLineConfirmer(opts.confirmIn, cmd.OutOrStdout())
	}

	a.engine, err = kql.New(kql.Options{
		Logger:          logger,
		Registry:        reg,
		Store:           store.New(store.Options{Logger: logger}),
		Output:          output,
		Confirmer:       confirmer,
		Journal:         journal,
		DataDir:         cfg.General.DataDir,
		DefaultSaveFile: cfg.Store.DefaultSaveFile,
		LoadPolicy:      cfg.LoadPolicy(),
		MaxInputLength:  cfg.Store.MaxInputLength,
		EnableAuditLog:  cfg.Log.Audit,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Close releases the journal and the log file
func (a *app) Close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			a.logger.WarnWithErr("failed to close history", err)
		}
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}
