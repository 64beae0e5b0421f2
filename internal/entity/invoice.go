package entity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is a billing line. ProductName and Price are copied from the
// product when it is picked and stay put afterwards.
type InvoiceItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"` // empty for custom lines
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

func (it *InvoiceItem) recompute() {
	it.Total = it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func (it *InvoiceItem) SetQuantity(q int) {
	it.Quantity = q
	it.recompute()
}

func (it *InvoiceItem) SetPrice(p decimal.Decimal) {
	it.Price = p
	it.recompute()
}

// SetProduct records the product id and, when the product is known, copies
// its name and current price onto the line.
func (it *InvoiceItem) SetProduct(productID string, p *Product) {
	it.ProductID = productID
	if p != nil {
		it.ProductName = p.Name
		it.Price = p.Price
	}
	it.recompute()
}

type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	LeadID        string          `json:"lead_id"`
	LeadName      string          `json:"lead_name"`
	Amount        decimal.Decimal `json:"amount"`
	Status        InvoiceStatus   `json:"status"` // draft, sent, paid, overdue
	DueDate       time.Time       `json:"due_date"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []InvoiceItem   `json:"items"`
}

// NewInvoice builds a draft invoice with its amount derived from the items.
func NewInvoice(number, leadID, leadName string, dueDate time.Time, items []InvoiceItem, now time.Time) (*Invoice, error) {
	inv := &Invoice{
		InvoiceNumber: number,
		LeadID:        strings.TrimSpace(leadID),
		LeadName:      leadName,
		Status:        InvoiceDraft,
		DueDate:       dueDate,
		CreatedAt:     now,
		Items:         append([]InvoiceItem(nil), items...),
	}
	inv.Recalculate()

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Recalculate re-derives every line total and the invoice amount.
func (inv *Invoice) Recalculate() {
	sum := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].recompute()
		sum = sum.Add(inv.Items[i].Total)
	}
	inv.Amount = sum
}

// ItemsTotal sums the stored line totals without touching them.
func (inv *Invoice) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}

func (inv *Invoice) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(inv.LeadID) == "" {
		verr.Add("lead_id", "is required")
	}
	if len(inv.Items) == 0 {
		verr.Add("items", "must contain at least one item")
	}
	for i, it := range inv.Items {
		if it.Quantity < 1 {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if it.Price.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].price", i), "must not be negative")
		}
	}
	if !inv.Status.IsValid() {
		verr.Add("status", "is invalid")
	}
	return verr.OrNil()
}

// Matches searches the lead name and invoice number, ignoring case.
func (inv *Invoice) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inv.LeadName), term) ||
		strings.Contains(strings.ToLower(inv.InvoiceNumber), term)
}

func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = append([]InvoiceItem{}, inv.Items...)
	return out
}

type InvoiceRepositoryInterface interface {
	List(ctx context.Context) ([]*Invoice, error)
	FindByID(ctx context.Context, id string) (*Invoice, error)
	Insert(ctx context.Context, invoice *Invoice) (*Invoice, error)
	Update(ctx context.Context, id string, apply func(*Invoice) error) (*Invoice, error)
	Remove(ctx context.Context, id string) error
	NextInvoiceNumber() string
}
