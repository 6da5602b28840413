// Command storefrontctl runs admin and data maintenance tasks against the
// storefront database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/archerandash/storefront/internal/infrastructure/logger"
	"github.com/archerandash/storefront/internal/infrastructure/persistence"
)

// commandTimeout bounds a single maintenance run
const commandTimeout = 10 * time.Minute

// env is what every subcommand needs
type env struct {
	cfg *config.Config
	db  *gorm.DB
	log *zap.Logger
}

// connect opens the database; tests swap it for SQLite
var connect = func(cfg *config.Config, log *zap.Logger) (*gorm.DB, func() error, error) {
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithGormLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))),
	)
	if err != nil {
		return nil, nil, err
	}
	return db.DB, db.Close, nil
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "storefrontctl",
		Short:         "Archer & Ash storefront maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	setup := func(cmd *cobra.Command) (*env, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("load configuration: %w", err)
		}
		log := logger.New(&logger.Config{
			Level:      logLevel,
			Format:     "console",
			Output:     "stderr",
			TimeFormat: "15:04:05",
		})
		db, closeDB, err := connect(cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		cleanup := func() {
			if err := closeDB(); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
			_ = log.Sync()
		}
		return &env{cfg: cfg, db: db, log: log}, cleanup, nil
	}

	root.AddCommand(
		newSeedAdminCmd(setup),
		newMigrateCategoriesCmd(setup),
		newBackfillSlugsCmd(setup),
	)
	return root
}

type setupFunc func(cmd *cobra.Command) (*env, func(), error)

// run wires setup, a timeout and cancellation on interrupt around fn
func run(setup setupFunc, fn func(ctx context.Context, cmd *cobra.Command, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		e, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()

		return fn(ctx, cmd, e)
	}
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
