package commands

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

func newOverviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show account, profile and loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			ctx := cmd.Context()

			if err := a.dashboard.Load(ctx); err != nil && !errors.Is(err, services.ErrNoAccount) {
				return err
			}

			var (
				profile *models.ProfileResponse
				loans   *models.LoansResponse
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				profile, err = a.dashboard.Profile(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				loans, err = a.loans.List(gctx, models.LoanStatusAny)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:     %s\n", profile.Profile.Username)
			if profile.Account == nil {
				fmt.Fprintln(out, "Account:  none, open one with `bankctl account create`")
			} else {
				acc := profile.Account
				fmt.Fprintf(out, "Account:  %s (%s)\n", acc.AccountNumber, acc.AccountType)
				fmt.Fprintf(out, "Balance:  %s %s\n", acc.Balance.StringFixed(2), acc.Currency)
			}

			pending := 0
			for _, loan := range loans.Loans {
				if loan.Status == models.LoanStatusPending {
					pending++
				}
			}
			fmt.Fprintf(out, "Loans:    %d (%d pending)\n", len(loans.Loans), pending)
			return nil
		},
	}
}

func newTransactionsCommand() *cobra.Command {
	var days int
	var txType string

	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List recent transactions of your account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := models.ParseTypeFilter(txType)
			if !ok {
				return services.ErrInvalidTypeFilter
			}

			a := appFrom(cmd)
			if err := a.dashboard.Load(cmd.Context()); err != nil {
				return err
			}

			var daysFilter *int
			if cmd.Flags().Changed("days") {
				daysFilter = &days
			}
			resp, err := a.dashboard.SetFilters(daysFilter, &t)
			if err != nil {
				return err
			}

			printDashboard(cmd.OutOrStdout(), resp)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", models.DefaultRecencyDays, "only the last N days, 0 for all history")
	cmd.Flags().StringVarP(&txType, "type", "t", "", "DEPOSIT, WITHDRAWAL or TRANSFER, empty for all")

	return cmd
}

func printDashboard(out io.Writer, resp *models.DashboardResponse) {
	if resp.Account != nil {
		fmt.Fprintf(out, "Account %s, balance %s %s\n", resp.Account.AccountNumber, resp.Account.Balance.StringFixed(2), resp.Account.Currency)
	}
	window := "all history"
	if resp.Filters.RecencyDays > 0 {
		window = fmt.Sprintf("last %d days", resp.Filters.RecencyDays)
	}
	kind := "all types"
	if resp.Filters.Type != models.TypeFilterNone {
		kind = string(resp.Filters.Type)
	}
	fmt.Fprintf(out, "Showing %s, %s\n\n", window, kind)

	if resp.Empty {
		fmt.Fprintln(out, resp.Message)
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, tx := range resp.Transactions {
		date := "-"
		if tx.HasTimestamp() {
			date = tx.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", date, tx.DisplayType, tx.DisplayAmount, tx.Description)
	}
	_ = tw.Flush()
}
