package cli

import (
	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/fixture"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

// RootCommand builds crmctl. Every subcommand works on a fresh store seeded
// with the fixture dataset.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "crmctl",
		Short:         "Offline reports over the CRM fixture dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(ReportCommand(), ExportCommand())
	return root
}

func fixtureReports() *usecase.ReportUseCase {
	store := database.NewStore()
	data := fixture.LoadInitialData()
	store.Load(data.Leads, data.Deals, data.Products, data.Invoices)
	return usecase.NewReportUseCase(store.Leads, store.Deals, store.Products, store.Invoices)
}
