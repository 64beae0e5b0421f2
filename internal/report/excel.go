package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// ExportWorkbook writes the records and the headline figures as an .xlsx
// workbook with Summary, Leads, Deals and Invoices sheets.
func ExportWorkbook(s Snapshot, now time.Time, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	a := BuildAnalytics(s, now)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Total leads", a.TotalLeads},
		{"Converted leads", a.ConvertedLeads},
		{"Conversion rate (%)", a.ConversionRate},
		{"Total revenue", a.TotalRevenue.InexactFloat64()},
		{"Pipeline value", a.PipelineValue.InexactFloat64()},
		{"Pending amount", PendingAmount(s.Invoices).InexactFloat64()},
		{"Overdue amount", OverdueAmount(s.Invoices).InexactFloat64()},
		{"Top lead source", string(a.TopLeadSource)},
	}
	if err := writeRows(f, "Summary", summary); err != nil {
		return err
	}

	leads := [][]interface{}{{"ID", "Name", "Email", "Phone", "Business type", "Segment", "Source", "Status", "Created", "Last contact"}}
	for _, l := range s.Leads {
		leads = append(leads, []interface{}{
			l.ID, l.Name, l.Email, l.Phone, l.BusinessType,
			string(l.Segment), string(l.Source), string(l.Status),
			l.CreatedAt.Format(dateLayout), l.LastContact.Format(dateLayout),
		})
	}
	if err := addSheet(f, "Leads", leads); err != nil {
		return err
	}

	deals := [][]interface{}{{"ID", "Lead", "Stage", "Value", "Probability", "Products", "Close date"}}
	for _, d := range s.Deals {
		deals = append(deals, []interface{}{
			d.ID, d.LeadName, string(d.Stage), d.Value.InexactFloat64(), d.Probability,
			strings.Join(d.Products, ", "), d.CloseDate.Format(dateLayout),
		})
	}
	if err := addSheet(f, "Deals", deals); err != nil {
		return err
	}

	invoices := [][]interface{}{{"Number", "Lead", "Status", "Amount", "Items", "Due date", "Created"}}
	for _, inv := range s.Invoices {
		invoices = append(invoices, []interface{}{
			inv.InvoiceNumber, inv.LeadName, string(inv.Status), inv.Amount.InexactFloat64(),
			len(inv.Items), inv.DueDate.Format(dateLayout), inv.CreatedAt.Format(dateLayout),
		})
	}
	if err := addSheet(f, "Invoices", invoices); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
