package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// newMoveCommand builds deposit, withdraw and transfer, which differ only in
// the endpoint and the recipient flag.
func newMoveCommand(kind, short string) *cobra.Command {
	var form models.TransactionForm

	cmd := &cobra.Command{
		Use:   kind + " AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := models.ParseTransactionKind(kind)

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			form.Amount = amount

			a := appFrom(cmd)
			if err := a.dashboard.Load(cmd.Context()); err != nil {
				return err
			}

			record, err := a.dashboard.SubmitTransaction(cmd.Context(), k, form)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transaction successful (id %d)\n", record.ID)
			if resp, err := a.dashboard.Dashboard(); err == nil && resp.Account != nil {
				fmt.Fprintf(out, "New balance: %s %s\n", resp.Account.Balance.StringFixed(2), resp.Account.Currency)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Description, "description", "", "free text shown in the statement")
	if kind == string(models.TransactionKindTransfer) {
		cmd.Flags().StringVar(&form.RecipientAccountNumber, "to", "", "recipient account number (required)")
		_ = cmd.MarkFlagRequired("to")
	}

	return cmd
}

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	var accountType, currency string
	create := &cobra.Command{
		Use:   "create",
		Short: "Open an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := appFrom(cmd).dashboard.CreateAccount(cmd.Context(), accountType, currency)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s account %s in %s\n", account.AccountType, account.AccountNumber, account.Currency)
			return nil
		},
	}
	create.Flags().StringVar(&accountType, "type", string(models.AccountTypeSavings), "SAVINGS, CHECKING or BUSINESS")
	create.Flags().StringVar(&currency, "currency", "", "currency code, NPR when empty")

	cmd.AddCommand(create)
	return cmd
}
