package database

import "github.com/xavierca1/ligue-crm/internal/entity"

// Store owns the four in-memory collections. Build one per process and pass
// it to whoever needs it.
type Store struct {
	Leads    *LeadRepository
	Deals    *DealRepository
	Products *ProductRepository
	Invoices *InvoiceRepository
}

func NewStore() *Store {
	return &Store{
		Leads:    NewLeadRepository(),
		Deals:    NewDealRepository(),
		Products: NewProductRepository(),
		Invoices: NewInvoiceRepository(),
	}
}

// Load seeds the collections with records that already carry ids.
func (s *Store) Load(leads []entity.Lead, deals []entity.Deal, products []entity.Product, invoices []entity.Invoice) {
	s.Leads.Seed(leads)
	s.Deals.Seed(deals)
	s.Products.Seed(products)
	s.Invoices.Seed(invoices)
}

// Counts reports the size of each collection.
func (s *Store) Counts() map[string]int {
	return map[string]int{
		"leads":    s.Leads.Count(),
		"deals":    s.Deals.Count(),
		"products": s.Products.Count(),
		"invoices": s.Invoices.Count(),
	}
}
