package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const invoicePrefix = "INV-"

type InvoiceRepository struct {
	records *collection[entity.Invoice]
	seq     atomic.Int64
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		records: newCollection(
			func(x *entity.Invoice) string { return x.ID },
			func(x *entity.Invoice, id string) { x.ID = id },
			entity.Invoice.Clone,
		),
	}
}

func (r *InvoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	return r.records.list(), nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.records.find(id)
}

func (r *InvoiceRepository) Insert(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	return r.records.insert(invoice), nil
}

func (r *InvoiceRepository) Update(ctx context.Context, id string, apply func(*entity.Invoice) error) (*entity.Invoice, error) {
	return r.records.update(id, apply)
}

func (r *InvoiceRepository) Remove(ctx context.Context, id string) error {
	r.records.remove(id)
	return nil
}

// NextInvoiceNumber hands out INV-001, INV-002, ... Numbers are never reused,
// even after the invoice holding one is deleted.
func (r *InvoiceRepository) NextInvoiceNumber() string {
	return fmt.Sprintf("%s%03d", invoicePrefix, r.seq.Add(1))
}

// Seed stores fixture invoices and moves the number sequence past the
// highest seeded number.
func (r *InvoiceRepository) Seed(invoices []entity.Invoice) {
	r.records.seed(invoices)
	for _, inv := range invoices {
		n, err := strconv.ParseInt(strings.TrimPrefix(inv.InvoiceNumber, invoicePrefix), 10, 64)
		if err != nil {
			continue
		}
		for {
			cur := r.seq.Load()
			if n <= cur || r.seq.CompareAndSwap(cur, n) {
				break
			}
		}
	}
}

func (r *InvoiceRepository) Count() int {
	return r.records.count()
}
