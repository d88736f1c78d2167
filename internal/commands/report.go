package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const defaultStatementFile = "statement.pdf"

func newReportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an account statement",
		Long:  "Submit a statement job and wait until the bank produces the document. Interrupt to stop waiting.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Generating statement...")

			artifact, err := appFrom(cmd).reports.Run(cmd.Context())
			if err != nil {
				return err
			}

			if artifact.Data == nil {
				fmt.Fprintf(out, "Statement ready: %s\n", artifact.Location)
				return nil
			}

			path := outPath
			if path == "" {
				path = statementFilename(artifact.Filename)
			}
			if err := os.WriteFile(path, artifact.Data, 0o600); err != nil {
				return fmt.Errorf("writing statement: %w", err)
			}
			fmt.Fprintf(out, "Statement saved to %s (%d bytes)\n", path, len(artifact.Data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "file to write the statement to, named by the bank when empty")
	return cmd
}

// statementFilename reduces the name suggested by the bank to a file in the
// working directory.
func statementFilename(suggested string) string {
	name := filepath.Base(strings.ReplaceAll(suggested, "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return defaultStatementFile
	}
	return name
}
