// Package commands implements the bankctl command tree.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sbilibin2017/gw-bank-client/internal/buildinfo"
	"github.com/sbilibin2017/gw-bank-client/internal/config"
)

type appKey struct{}

// appFrom returns the services built for the running command.
func appFrom(cmd *cobra.Command) *app {
	return cmd.Context().Value(appKey{}).(*app)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "bankctl",
		Short:   "Terminal client for the bank",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.profilePath, "profile", config.DefaultProfilePath(), "profile file holding the API URL and credential")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "config", "", "env file with client settings")
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "bank API base URL, overrides the profile")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	rootCmd.AddCommand(
		newRegisterCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newOverviewCommand(),
		newTransactionsCommand(),
		newMoveCommand("deposit", "Deposit money into your account"),
		newMoveCommand("withdraw", "Withdraw money from your account"),
		newMoveCommand("transfer", "Transfer money to another account"),
		newAccountCommand(),
		newLoansCommand(),
		newReportCommand(),
	)

	return rootCmd
}
