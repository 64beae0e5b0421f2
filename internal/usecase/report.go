package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/report"
)

// ReportUseCase reads the current records and hands them to the report
// functions. Nothing is cached; every call sees the latest state.
type ReportUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Deals    entity.DealRepositoryInterface
	Products entity.ProductRepositoryInterface
	Invoices entity.InvoiceRepositoryInterface
	Now      Clock
}

func NewReportUseCase(leads entity.LeadRepositoryInterface, deals entity.DealRepositoryInterface, products entity.ProductRepositoryInterface, invoices entity.InvoiceRepositoryInterface) *ReportUseCase {
	return &ReportUseCase{
		Leads:    leads,
		Deals:    deals,
		Products: products,
		Invoices: invoices,
		Now:      time.Now,
	}
}

func (uc *ReportUseCase) Snapshot(ctx context.Context) (report.Snapshot, error) {
	var (
		s   report.Snapshot
		err error
	)
	if s.Leads, err = uc.Leads.List(ctx); err != nil {
		return s, fmt.Errorf("list leads: %w", err)
	}
	if s.Deals, err = uc.Deals.List(ctx); err != nil {
		return s, fmt.Errorf("list deals: %w", err)
	}
	if s.Products, err = uc.Products.List(ctx); err != nil {
		return s, fmt.Errorf("list products: %w", err)
	}
	if s.Invoices, err = uc.Invoices.List(ctx); err != nil {
		return s, fmt.Errorf("list invoices: %w", err)
	}
	return s, nil
}

func (uc *ReportUseCase) Dashboard(ctx context.Context) (report.Dashboard, error) {
	s, err := uc.Snapshot(ctx)
	if err != nil {
		return report.Dashboard{}, err
	}
	return report.BuildDashboard(s), nil
}

func (uc *ReportUseCase) Analytics(ctx context.Context) (report.Analytics, error) {
	s, err := uc.Snapshot(ctx)
	if err != nil {
		return report.Analytics{}, err
	}
	return report.BuildAnalytics(s, uc.Now()), nil
}

func (uc *ReportUseCase) Pipeline(ctx context.Context) ([]report.PipelineColumn, error) {
	deals, err := uc.Deals.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.DealsByStage(deals), nil
}

func (uc *ReportUseCase) ProductCategories(ctx context.Context) ([]report.CategoryCount, error) {
	products, err := uc.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.CategoryCounts(products), nil
}

func (uc *ReportUseCase) InvoiceSummary(ctx context.Context) (report.InvoiceSummary, error) {
	invoices, err := uc.Invoices.List(ctx)
	if err != nil {
		return report.InvoiceSummary{}, err
	}
	return report.SummarizeInvoices(invoices), nil
}

func (uc *ReportUseCase) Export(ctx context.Context, w io.Writer) error {
	s, err := uc.Snapshot(ctx)
	if err != nil {
		return err
	}
	return report.ExportWorkbook(s, uc.Now(), w)
}
