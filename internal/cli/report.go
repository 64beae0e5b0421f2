package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// ReportCommand prints one of the aggregate views as indented JSON.
func ReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print dashboard, analytics, pipeline or invoice figures",
		Long: `Print an aggregate view of the fixture dataset as JSON.

Examples:
  crmctl report dashboard
  crmctl report analytics
  crmctl report pipeline
  crmctl report invoices`,
	}

	views := []struct {
		use, short string
		build      func(context.Context, *usecase.ReportUseCase) (any, error)
	}{
		{"dashboard", "Headline totals, recent leads and upcoming deals", func(ctx context.Context, uc *usecase.ReportUseCase) (any, error) {
			return uc.Dashboard(ctx)
		}},
		{"analytics", "Conversion, lead sources and this month's figures", func(ctx context.Context, uc *usecase.ReportUseCase) (any, error) {
			return uc.Analytics(ctx)
		}},
		{"pipeline", "Deals grouped by stage", func(ctx context.Context, uc *usecase.ReportUseCase) (any, error) {
			return uc.Pipeline(ctx)
		}},
		{"invoices", "Invoice totals by status", func(ctx context.Context, uc *usecase.ReportUseCase) (any, error) {
			return uc.InvoiceSummary(ctx)
		}},
	}

	for _, v := range views {
		v := v
		cmd.AddCommand(&cobra.Command{
			Use:   v.use,
			Short: v.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out, err := v.build(cmd.Context(), fixtureReports())
				if err != nil {
					return fmt.Errorf("build %s: %w", v.use, err)
				}
				return printJSON(cmd.OutOrStdout(), out)
			},
		})
	}
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
