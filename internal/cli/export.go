package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExportCommand writes the xlsx workbook to disk.
func ExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the CRM workbook (summary, leads, deals, invoices) to an xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := fixtureReports().Export(cmd.Context(), f); err != nil {
				f.Close()
				return fmt.Errorf("export workbook: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "crm-report.xlsx", "Destination file")
	return cmd
}
