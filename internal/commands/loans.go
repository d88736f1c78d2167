package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

func newLoansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List, apply for and pay loans",
	}
	cmd.AddCommand(newLoansListCommand(), newLoansApplyCommand(), newLoansPayCommand())
	return cmd
}

func newLoansListCommand() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.LoanStatusAny
			if status != "" {
				filter = models.ParseLoanStatus(status)
				if filter == models.LoanStatusOther {
					return fmt.Errorf("unknown loan status %q", status)
				}
			}

			resp, err := appFrom(cmd).loans.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Loans) == 0 {
				fmt.Fprintln(out, "No loans")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATUS\tAMOUNT\tRATE\tTERM\tMONTHLY\tREMAINING")
			for _, l := range resp.Loans {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s%%\t%dm\t%s\t%s\n",
					l.LoanID, l.Status, l.LoanAmount.StringFixed(2), l.InterestRate.String(),
					l.LoanTermMonths, l.MonthlyPayment.StringFixed(2), l.RemainingAmount.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "PENDING, ACCEPTED, REJECTED or PAID")
	return cmd
}

func newLoansApplyCommand() *cobra.Command {
	var amount, rate string
	var app models.LoanApplication

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply for a loan on your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if app.LoanAmount, err = decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}
			if app.InterestRate, err = decimal.NewFromString(rate); err != nil {
				return fmt.Errorf("invalid rate %q", rate)
			}

			a := appFrom(cmd)
			if err := a.dashboard.Load(cmd.Context()); err != nil {
				return err
			}

			loan, err := a.loans.Apply(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loan %d requested, status %s, monthly payment %s\n",
				loan.LoanID, loan.Status, loan.MonthlyPayment.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "loan amount, 10000 to 5000000 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&rate, "rate", "", "annual interest rate in percent, 5 to 25 (required)")
	_ = cmd.MarkFlagRequired("rate")
	cmd.Flags().IntVar(&app.LoanTermMonths, "term", 12, "term in months, 6 to 120")
	cmd.Flags().StringVar(&app.Purpose, "purpose", "", "what the loan is for")

	return cmd
}

func newLoansPayCommand() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "pay LOAN_ID AMOUNT",
		Short: "Pay an installment of a loan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			loanID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || loanID <= 0 {
				return fmt.Errorf("invalid loan id %q", args[0])
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[1])
			}

			a := appFrom(cmd)
			if err := a.dashboard.Load(cmd.Context()); err != nil {
				return err
			}

			if err := a.loans.Pay(cmd.Context(), loanID, models.LoanPayment{Amount: amount, Notes: notes}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paid %s towards loan %d\n", amount.StringFixed(2), loanID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "note attached to the payment")
	return cmd
}
