package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Snapshot is the set of records a report is computed from.
type Snapshot struct {
	Leads    []*entity.Lead
	Deals    []*entity.Deal
	Products []*entity.Product
	Invoices []*entity.Invoice
}

type Dashboard struct {
	TotalLeads     int             `json:"total_leads"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PipelineValue  decimal.Decimal `json:"pipeline_value"`
	ConversionRate float64         `json:"conversion_rate"`
	RecentLeads    []*entity.Lead  `json:"recent_leads"`
	UpcomingDeals  []*entity.Deal  `json:"upcoming_deals"`
}

func BuildDashboard(s Snapshot) Dashboard {
	return Dashboard{
		TotalLeads:     len(s.Leads),
		TotalRevenue:   TotalRevenue(s.Invoices),
		PipelineValue:  PipelineValue(s.Deals),
		ConversionRate: ConversionRate(s.Leads),
		RecentLeads:    RecentLeads(s.Leads, DefaultTopN),
		UpcomingDeals:  UpcomingDeals(s.Deals, DefaultTopN),
	}
}

type MonthlyPerformance struct {
	NewLeads    int             `json:"new_leads"`
	Revenue     decimal.Decimal `json:"revenue"`
	DealsClosed int             `json:"deals_closed"`
	ActiveDeals int             `json:"active_deals"`
}

type Analytics struct {
	TotalLeads     int                `json:"total_leads"`
	ConvertedLeads int                `json:"converted_leads"`
	ConversionRate float64            `json:"conversion_rate"`
	TotalRevenue   decimal.Decimal    `json:"total_revenue"`
	PipelineValue  decimal.Decimal    `json:"pipeline_value"`
	LeadSources    []SourceShare      `json:"lead_sources"`
	DealStages     []StageSummary     `json:"deal_stages"`
	ThisMonth      MonthlyPerformance `json:"this_month"`
	// TopLeadSource is empty when there are no leads.
	TopLeadSource entity.LeadSource `json:"top_lead_source,omitempty"`
}

func BuildAnalytics(s Snapshot, now time.Time) Analytics {
	month := ThisMonth(s.Leads, s.Invoices, now)
	top, _ := TopLeadSource(s.Leads)

	converted := 0
	for _, l := range s.Leads {
		if l.Status == entity.LeadStatusConverted {
			converted++
		}
	}

	return Analytics{
		TotalLeads:     len(s.Leads),
		ConvertedLeads: converted,
		ConversionRate: ConversionRate(s.Leads),
		TotalRevenue:   TotalRevenue(s.Invoices),
		PipelineValue:  PipelineValue(s.Deals),
		LeadSources:    LeadSourceBreakdown(s.Leads),
		DealStages:     DealStageBreakdown(s.Deals),
		ThisMonth: MonthlyPerformance{
			NewLeads:    month.NewLeads,
			Revenue:     month.Revenue,
			DealsClosed: DealsClosed(s.Deals),
			ActiveDeals: ActiveDeals(s.Deals),
		},
		TopLeadSource: top,
	}
}

type InvoiceSummary struct {
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
	Overdue decimal.Decimal `json:"overdue"`
	Count   int             `json:"count"`
}

func SummarizeInvoices(invoices []*entity.Invoice) InvoiceSummary {
	return InvoiceSummary{
		Paid:    TotalRevenue(invoices),
		Pending: PendingAmount(invoices),
		Overdue: OverdueAmount(invoices),
		Count:   len(invoices),
	}
}
