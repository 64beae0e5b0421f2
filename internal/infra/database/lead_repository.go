package database

import (
	"context"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type LeadRepository struct {
	records *collection[entity.Lead]
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{
		records: newCollection(
			func(l *entity.Lead) string { return l.ID },
			func(l *entity.Lead, id string) { l.ID = id },
			entity.Lead.Clone,
		),
	}
}

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	return r.records.list(), nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	return r.records.find(id)
}

func (r *LeadRepository) Insert(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	return r.records.insert(lead), nil
}

func (r *LeadRepository) Update(ctx context.Context, id string, apply func(*entity.Lead) error) (*entity.Lead, error) {
	return r.records.update(id, apply)
}

func (r *LeadRepository) Remove(ctx context.Context, id string) error {
	r.records.remove(id)
	return nil
}

func (r *LeadRepository) Seed(leads []entity.Lead) {
	r.records.seed(leads)
}

func (r *LeadRepository) Count() int {
	return r.records.count()
}
