package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fatflowers/wellbeing/internal/app/service/usage"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen, color.Bold)
	warnColor   = color.New(color.FgYellow, color.Bold)
	badColor    = color.New(color.FgRed, color.Bold)
)

func (c *cli) snapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot USER_ID",
		Short: "Show quota and premium state of an installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				printSnapshot(cmd.OutOrStdout(), args[0], s.tracker.Snapshot(ctx, args[0]))
				return nil
			})
		},
	}
}

func (c *cli) recordComicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record-comic USER_ID",
		Short: "Consume one comic from the monthly quota",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				w := cmd.OutOrStdout()
				if !s.tracker.RecordComicGenerated(ctx, args[0]) {
					badColor.Fprintln(w, "DENIED: monthly comic limit reached")
					return nil
				}
				okColor.Fprint(w, "RECORDED")
				fmt.Fprintf(w, " remaining=%s\n", formatRemaining(s.tracker.ComicsRemainingThisMonth(ctx, args[0])))
				return nil
			})
		},
	}
}

func (c *cli) recordBreathingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record-breathing USER_ID",
		Short: "Count one completed breathing exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				n := s.tracker.RecordBreathingCompleted(ctx, args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "breathing exercises this month: %d\n", n)
				return nil
			})
		},
	}
}

func (c *cli) trialCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trial USER_ID",
		Short: "Start the free premium trial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				exp, err := s.tracker.StartFreeTrial(ctx, args[0])
				if err != nil {
					return err
				}
				printPremium(cmd.OutOrStdout(), exp)
				return nil
			})
		},
	}
}

func (c *cli) activateCmd() *cobra.Command {
	var months float64
	cmd := &cobra.Command{
		Use:     "activate USER_ID",
		Short:   "Activate premium for a number of months",
		Example: `  wellbeingctl activate install-1 --months 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				exp, err := s.tracker.ActivatePremium(ctx, args[0], months)
				if err != nil {
					return err
				}
				printPremium(cmd.OutOrStdout(), exp)
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&months, "months", 1, "Premium duration in months (fractions count 28 days per month)")
	return cmd
}

func (c *cli) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset USER_ID",
		Short: "Discard the usage record of an installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				s.tracker.ResetAll(ctx, args[0])
				warnColor.Fprintln(cmd.OutOrStdout(), "RESET")
				return nil
			})
		},
	}
}

func (c *cli) logsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "logs USER_ID",
		Short: "Show the newest usage record changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				// earlier commands in this process may still be writing
				s.audit.Flush()
				logs, err := s.audit.List(ctx, args[0], limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, l := range logs {
					fmt.Fprintf(w, "%s  %s\n", l.CreatedAt.Format(time.RFC3339), l.Reason)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of rows")
	return cmd
}

func printSnapshot(w io.Writer, userID string, snap *usage.Snapshot) {
	headerColor.Fprintf(w, "USAGE %s\n", userID)
	fmt.Fprintf(w, "Comics:     %d generated, %s remaining (limit %d)\n",
		snap.ComicsGenerated, formatRemaining(snap.ComicsRemaining), snap.ComicsLimit)
	fmt.Fprintf(w, "Breathing:  %d exercises available\n", snap.BreathingExercisesAvailable)
	fmt.Fprint(w, "Tier:       ")
	if !snap.IsPremium {
		fmt.Fprintln(w, "free")
		return
	}
	okColor.Fprint(w, "premium")
	if snap.PremiumExpiryDate != nil {
		fmt.Fprintf(w, " until %s", snap.PremiumExpiryDate.Format(time.RFC3339))
	}
	fmt.Fprintln(w)
}

func printPremium(w io.Writer, exp time.Time) {
	okColor.Fprint(w, "PREMIUM")
	fmt.Fprintf(w, " until %s\n", exp.Format(time.RFC3339))
}

func formatRemaining(n int) string {
	if n == usage.Unlimited {
		return "unlimited"
	}
	return fmt.Sprint(n)
}
