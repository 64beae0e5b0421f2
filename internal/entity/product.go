package entity

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	IsActive    bool            `json:"is_active"`
}

// NewProduct creates an active product unless isActive is explicitly false.
func NewProduct(name string, category ProductCategory, price decimal.Decimal, description string, features []string, isActive *bool) (*Product, error) {
	if category == "" {
		category = CategoryWebsite
	}

	p := &Product{
		Name:        strings.TrimSpace(name),
		Category:    category,
		Price:       price,
		Description: description,
		Features:    cleanLines(features),
		IsActive:    true,
	}
	if isActive != nil {
		p.IsActive = *isActive
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		verr.Add("name", "is required")
	}
	if !p.Category.IsValid() {
		verr.Add("category", "is invalid")
	}
	if p.Price.IsNegative() {
		verr.Add("price", "must not be negative")
	}
	return verr.OrNil()
}

func (p Product) Clone() Product {
	out := p
	out.Features = append([]string{}, p.Features...)
	return out
}

type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]*Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Insert(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, id string, apply func(*Product) error) (*Product, error)
	Remove(ctx context.Context, id string) error
}
