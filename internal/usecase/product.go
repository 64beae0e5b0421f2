package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ProductUseCase struct {
	Repo entity.ProductRepositoryInterface
	log  *logrus.Entry
}

func NewProductUseCase(repo entity.ProductRepositoryInterface, log *logrus.Logger) *ProductUseCase {
	return &ProductUseCase{Repo: repo, log: log.WithField("usecase", "product")}
}

func (uc *ProductUseCase) Create(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := entity.NewProduct(input.Name, input.Category, input.Price,
		input.Description, input.Features, input.IsActive)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.Insert(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	uc.log.WithFields(logrus.Fields{"product_id": saved.ID, "category": saved.Category}).Info("product created")
	return saved, nil
}

// Update leaves existing invoice lines alone; they keep the name and price
// copied when they were filled in.
func (uc *ProductUseCase) Update(ctx context.Context, id string, input UpdateProductInput) (*entity.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	return uc.Repo.Update(ctx, id, func(p *entity.Product) error {
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Category != nil {
			p.Category = *input.Category
		}
		if input.Price != nil {
			p.Price = *input.Price
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
		if input.Features != nil {
			p.Features = append([]string{}, *input.Features...)
		}
		if input.IsActive != nil {
			p.IsActive = *input.IsActive
		}
		return p.Validate()
	})
}

func (uc *ProductUseCase) ToggleActive(ctx context.Context, id string) (*entity.Product, error) {
	return uc.Repo.Update(ctx, id, func(p *entity.Product) error {
		p.IsActive = !p.IsActive
		return nil
	})
}

func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove product %s: %w", id, err)
	}
	return nil
}

func (uc *ProductUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return uc.Repo.FindByID(ctx, id)
}

func (uc *ProductUseCase) List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error) {
	products, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if !isAll(filter.Category) && string(p.Category) != filter.Category {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
