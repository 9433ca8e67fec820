package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/app/service/usage"
	usagelog "github.com/fatflowers/wellbeing/internal/app/service/usage_log"
	"github.com/fatflowers/wellbeing/internal/storage/backend"
	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/fatflowers/wellbeing/pkg/logger"
)

var version = "dev"

// services is what every subcommand works with.
type services struct {
	tracker *usage.Tracker
	ledger  *feather.Ledger
	audit   *usagelog.Service
}

type cli struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "wellbeingctl",
		Short: "Inspect and edit usage records and feather ledgers",
		Long: `wellbeingctl talks to the configured store directly, bypassing the HTTP API.
Changes go through the same tracker and ledger the server uses, so quota,
expiry and audit rules still apply.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to configuration file (default ./config.yaml)")

	root.AddCommand(
		c.snapshotCmd(),
		c.recordComicCmd(),
		c.recordBreathingCmd(),
		c.trialCmd(),
		c.activateCmd(),
		c.resetCmd(),
		c.logsCmd(),
		c.awardCmd(),
		c.totalCmd(),
		c.recentCmd(),
	)
	return root
}

// run opens the store, builds the services and closes everything after fn.
func (c *cli) run(cmd *cobra.Command, fn func(ctx context.Context, s *services) error) error {
	cfg, err := config.NewFromFile(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	// keep the terminal for command output
	cfg.Log.Level = "error"
	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	store, err := backend.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorw("failed to close storage", zap.Error(err))
		}
	}()

	audit := usagelog.New(store, log)
	defer audit.Flush()

	s := &services{
		tracker: usage.New(store.Usage(), cfg.Entitlement, log, usage.WithAuditor(audit)),
		ledger:  feather.New(store.Grants(), log),
		audit:   audit,
	}
	return fn(cmd.Context(), s)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
