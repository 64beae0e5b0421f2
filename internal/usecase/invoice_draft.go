package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// InvoiceDraft is an invoice being edited before it is saved. Line totals
// follow every quantity or price change. Picking a known product copies its
// name and price onto that line only; other lines are never touched.
type InvoiceDraft struct {
	LeadID  string
	DueDate string
	Items   []entity.InvoiceItem

	products entity.ProductRepositoryInterface
}

// NewDraft starts an empty draft, or one pre-filled from an existing invoice.
func (uc *InvoiceUseCase) NewDraft(from *entity.Invoice) *InvoiceDraft {
	d := &InvoiceDraft{products: uc.Products, Items: []entity.InvoiceItem{}}
	if from != nil {
		d.LeadID = from.LeadID
		d.DueDate = from.DueDate.Format(dateLayout)
		d.Items = append(d.Items, from.Items...)
	}
	return d
}

// AddItem appends a blank custom line with quantity 1.
func (d *InvoiceDraft) AddItem() entity.InvoiceItem {
	item := entity.InvoiceItem{
		ID:       newItemID(),
		Quantity: 1,
		Price:    decimal.Zero,
		Total:    decimal.Zero,
	}
	d.Items = append(d.Items, item)
	return item
}

func (d *InvoiceDraft) RemoveItem(itemID string) {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return
		}
	}
}

func (d *InvoiceDraft) SetQuantity(itemID string, quantity int) error {
	it, err := d.item(itemID)
	if err != nil {
		return err
	}
	it.SetQuantity(quantity)
	return nil
}

func (d *InvoiceDraft) SetPrice(itemID string, price decimal.Decimal) error {
	it, err := d.item(itemID)
	if err != nil {
		return err
	}
	it.SetPrice(price)
	return nil
}

func (d *InvoiceDraft) SetProductName(itemID, name string) error {
	it, err := d.item(itemID)
	if err != nil {
		return err
	}
	it.ProductName = name
	return nil
}

// SetProduct selects a product for the line. Inactive products still fill
// in; unknown ids only record the id.
func (d *InvoiceDraft) SetProduct(ctx context.Context, itemID, productID string) error {
	it, err := d.item(itemID)
	if err != nil {
		return err
	}
	product, err := lookupProduct(ctx, d.products, productID)
	if err != nil {
		return err
	}
	it.SetProduct(productID, product)
	return nil
}

// Amount is the sum of the current line totals.
func (d *InvoiceDraft) Amount() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range d.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// Input turns the draft into the payload for Create or Update.
func (d *InvoiceDraft) Input() CreateInvoiceInput {
	items := make([]InvoiceItemInput, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, InvoiceItemInput{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return CreateInvoiceInput{LeadID: d.LeadID, DueDate: d.DueDate, Items: items}
}

func (d *InvoiceDraft) item(itemID string) (*entity.InvoiceItem, error) {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			return &d.Items[i], nil
		}
	}
	return nil, fmt.Errorf("draft item %s: %w", itemID, entity.ErrNotFound)
}

// RecalculateItem applies a single field edit to a draft line without any
// stored session, as the HTTP draft endpoint needs.
func (uc *InvoiceUseCase) RecalculateItem(ctx context.Context, input RecalculateItemInput) (entity.InvoiceItem, error) {
	if err := validateInput(input); err != nil {
		return entity.InvoiceItem{}, err
	}

	in := input.Item
	item := entity.InvoiceItem{
		ID:          in.ID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		Price:       in.Price,
	}
	if item.ID == "" {
		item.ID = newItemID()
	}

	switch input.Change {
	case ChangeProductID:
		product, err := lookupProduct(ctx, uc.Products, in.ProductID)
		if err != nil {
			return entity.InvoiceItem{}, err
		}
		item.SetProduct(in.ProductID, product)
	default:
		item.SetQuantity(in.Quantity)
	}
	return item, nil
}

// lookupProduct returns nil, nil when the id is empty or unknown.
func lookupProduct(ctx context.Context, repo entity.ProductRepositoryInterface, id string) (*entity.Product, error) {
	if id == "" {
		return nil, nil
	}
	p, err := repo.FindByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, nil
	}
	return p, err
}
