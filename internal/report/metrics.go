// Package report computes the CRM's derived figures. Every function is pure:
// it reads the records it is given and keeps no state between calls.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ConversionRate is the share of converted leads, as a percentage. An empty
// lead list yields 0.
func ConversionRate(leads []*entity.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	converted := 0
	for _, l := range leads {
		if l.Status == entity.LeadStatusConverted {
			converted++
		}
	}
	return float64(converted) / float64(len(leads)) * 100
}

// TotalRevenue sums paid invoices.
func TotalRevenue(invoices []*entity.Invoice) decimal.Decimal {
	return sumByStatus(invoices, entity.InvoicePaid)
}

// PendingAmount sums invoices that were sent but not paid yet.
func PendingAmount(invoices []*entity.Invoice) decimal.Decimal {
	return sumByStatus(invoices, entity.InvoiceSent)
}

func OverdueAmount(invoices []*entity.Invoice) decimal.Decimal {
	return sumByStatus(invoices, entity.InvoiceOverdue)
}

// PipelineValue sums every deal that was not lost. Won deals count.
func PipelineValue(deals []*entity.Deal) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range deals {
		if d.Stage != entity.StageClosedLost {
			sum = sum.Add(d.Value)
		}
	}
	return sum
}

func DealsClosed(deals []*entity.Deal) int {
	n := 0
	for _, d := range deals {
		if d.Stage == entity.StageClosedWon {
			n++
		}
	}
	return n
}

func ActiveDeals(deals []*entity.Deal) int {
	n := 0
	for _, d := range deals {
		if d.Stage.IsOpen() {
			n++
		}
	}
	return n
}

func sumByStatus(invoices []*entity.Invoice, status entity.InvoiceStatus) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		if inv.Status == status {
			sum = sum.Add(inv.Amount)
		}
	}
	return sum
}

// percent returns part/total*100 rounded half away from zero to one decimal.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}
