package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbilibin2017/gw-bank-client/internal/jwt"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

func newRegisterCommand() *cobra.Command {
	var reg models.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a bank user and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reg.Password == "" {
				password, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				reg.Password = password
			}
			reg.PasswordConfirm = reg.Password

			a := appFrom(cmd)
			profile, err := a.auth.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			if err := a.remember(profile.Username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", profile.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Username, "username", "", "username (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password, read from stdin when empty")
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")

	return cmd
}

func newLoginCommand() *cobra.Command {
	var creds models.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the credential in the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if creds.Password == "" {
				password, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				creds.Password = password
			}

			a := appFrom(cmd)
			profile, err := a.auth.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			if err := a.remember(profile.Username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", profile.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.Username, "username", "u", "", "username (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", "", "password, read from stdin when empty")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appFrom(cmd).auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			state, err := a.auth.State()
			if err != nil {
				return err
			}

			resp, err := a.dashboard.Profile(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := resp.Profile
			fmt.Fprintf(out, "%s <%s>\n", p.Username, p.Email)
			if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
				fmt.Fprintf(out, "Name:    %s\n", name)
			}
			fmt.Fprintf(out, "API:     %s\n", a.apiURL)

			info, err := a.inspector.Inspect(state.Credential())
			switch {
			case errors.Is(err, jwt.ErrNotJWT):
				fmt.Fprintln(out, "Session: token without expiry")
			case err == nil && !info.ExpiresAt.IsZero():
				fmt.Fprintf(out, "Session: expires %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

// readSecret reads one line from r, the way passwords are piped in.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
