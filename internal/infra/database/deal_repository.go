package database

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type DealRepository struct {
	records *collection[entity.Deal]
}

func NewDealRepository() *DealRepository {
	return &DealRepository{
		records: newCollection(
			func(x *entity.Deal) string { return x.ID },
			func(x *entity.Deal, id string) { x.ID = id },
			entity.Deal.Clone,
		),
	}
}

func (r *DealRepository) List(ctx context.Context) ([]*entity.Deal, error) {
	return r.records.list(), nil
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	return r.records.find(id)
}

func (r *DealRepository) Insert(ctx context.Context, deal *entity.Deal) (*entity.Deal, error) {
	return r.records.insert(deal), nil
}

func (r *DealRepository) Update(ctx context.Context, id string, apply func(*entity.Deal) error) (*entity.Deal, error) {
	return r.records.update(id, apply)
}

func (r *DealRepository) Remove(ctx context.Context, id string) error {
	r.records.remove(id)
	return nil
}

func (r *DealRepository) Seed(deals []entity.Deal) {
	r.records.seed(deals)
}

func (r *DealRepository) Count() int {
	return r.records.count()
}
