package main

import (
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/config"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type app struct {
	invoices *usecase.InvoiceUseCase
	handlers handlers.Handlers
}

// newApp builds the use cases over the store and the handlers on top of them.
func newApp(cfg *config.Config, store *database.Store, producer queue.QueueProducerInterface, broker handlers.BrokerStatus, log *logrus.Logger) *app {
	metrics := middleware.PrometheusRecorder{}
	policy := usecase.NewTransitionPolicy(cfg.CRM.EnforceTransitions)

	leadUC := usecase.NewLeadUseCase(store.Leads, producer, metrics, log)
	dealUC := usecase.NewDealUseCase(store.Deals, store.Leads, producer, metrics, policy, log)
	productUC := usecase.NewProductUseCase(store.Products, log)
	invoiceUC := usecase.NewInvoiceUseCase(store.Invoices, store.Leads, store.Products, producer, metrics, policy, log)
	reportUC := usecase.NewReportUseCase(store.Leads, store.Deals, store.Products, store.Invoices)

	return &app{
		invoices: invoiceUC,
		handlers: handlers.Handlers{
			Leads:    handlers.NewLeadHandler(leadUC, log),
			Deals:    handlers.NewDealHandler(dealUC, reportUC, log),
			Products: handlers.NewProductHandler(productUC, reportUC, log),
			Invoices: handlers.NewInvoiceHandler(invoiceUC, reportUC, log),
			Reports:  handlers.NewReportHandler(reportUC, log),
			Health:   handlers.NewHealthHandler(store.Counts, broker, cfg.Mail.Enabled()),
		},
	}
}
