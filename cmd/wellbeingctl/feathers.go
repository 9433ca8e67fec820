package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fatflowers/wellbeing/internal/app/service/feather"
	"github.com/fatflowers/wellbeing/internal/models"
)

func (c *cli) awardCmd() *cobra.Command {
	var (
		category    string
		amount      int64
		description string
	)
	cmd := &cobra.Command{
		Use:     "award USER_ID",
		Short:   "Append a feather grant",
		Example: `  wellbeingctl award install-1 --category bonus --amount 5 --description "Support goodwill"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				g, err := s.ledger.AddGrant(ctx, args[0], category, amount, description)
				if err != nil {
					return err
				}
				okColor.Fprint(cmd.OutOrStdout(), "GRANTED ")
				printGrant(cmd.OutOrStdout(), g)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "bonus", "Grant category")
	cmd.Flags().Int64Var(&amount, "amount", 1, "Feathers to grant")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	return cmd
}

func (c *cli) totalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "total USER_ID",
		Short: "Sum every grant of an installation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				total, err := s.ledger.TotalFeathers(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", total)
				return nil
			})
		},
	}
}

func (c *cli) recentCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent USER_ID",
		Short: "List the newest grants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context, s *services) error {
				grants, err := s.ledger.RecentGrants(ctx, args[0], limit)
				if err != nil {
					return err
				}
				for _, g := range grants {
					printGrant(cmd.OutOrStdout(), g)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", feather.DefaultRecentLimit, "Maximum number of grants")
	return cmd
}

func printGrant(w io.Writer, g *models.FeatherGrant) {
	fmt.Fprintf(w, "%s  %-16s %+d", g.Timestamp.Format(time.RFC3339), g.Category, g.Amount)
	if d := g.DescriptionText(); d != "" {
		fmt.Fprintf(w, "  %s", d)
	}
	fmt.Fprintln(w)
}
