package database

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ProductRepository struct {
	records *collection[entity.Product]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		records: newCollection(
			func(x *entity.Product) string { return x.ID },
			func(x *entity.Product, id string) { x.ID = id },
			entity.Product.Clone,
		),
	}
}

func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	return r.records.list(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.records.find(id)
}

func (r *ProductRepository) Insert(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	return r.records.insert(product), nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, apply func(*entity.Product) error) (*entity.Product, error) {
	return r.records.update(id, apply)
}

func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	r.records.remove(id)
	return nil
}

func (r *ProductRepository) Seed(products []entity.Product) {
	r.records.seed(products)
}

func (r *ProductRepository) Count() int {
	return r.records.count()
}
