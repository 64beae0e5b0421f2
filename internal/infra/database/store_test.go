package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/fixture"
)

func seededStore() *Store {
	s := NewStore()
	data := fixture.LoadInitialData()
	s.Load(data.Leads, data.Deals, data.Products, data.Invoices)
	return s
}

func TestStore_LoadAndCounts(t *testing.T) {
	assert.Equal(t, map[string]int{"leads": 5, "deals": 4, "products": 5, "invoices": 2}, seededStore().Counts())
	assert.Equal(t, map[string]int{"leads": 0, "deals": 0, "products": 0, "invoices": 0}, NewStore().Counts())
}

func TestLeadRepository_InsertAssignsFreshID(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadRepository()

	a, err := repo.Insert(ctx, &entity.Lead{ID: "caller-chosen", Name: "A"})
	require.NoError(t, err)
	b, err := repo.Insert(ctx, &entity.Lead{Name: "B"})
	require.NoError(t, err)

	assert.NotEqual(t, "caller-chosen", a.ID)
	assert.NotEqual(t, a.ID, b.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
}

func TestDealRepository_InsertStoresCopy(t *testing.T) {
	ctx := context.Background()
	repo := seededStore().Deals
	in := &entity.Deal{LeadName: "Ana", Products: []string{"Website"}}

	got, err := repo.Insert(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	in.Products[0] = "mutated"

	stored, err := repo.FindByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.LeadName)
	assert.Equal(t, []string{"Website"}, stored.Products)
	assert.Equal(t, 5, repo.Count())
}

func TestLeadRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := seededStore().Leads

	got, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	got.Name = "mutated"
	got.Interactions = append(got.Interactions, entity.Interaction{ID: "x"})

	again, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson", again.Name)
	assert.NotEqual(t, len(got.Interactions), len(again.Interactions))
}

func TestRepository_FindMissing(t *testing.T) {
	_, err := NewDealRepository().FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_UpdateKeepsRecordOnError(t *testing.T) {
	ctx := context.Background()
	repo := seededStore().Deals
	boom := errors.New("boom")

	_, err := repo.Update(ctx, "1", func(d *entity.Deal) error {
		d.Notes = "half-written"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	d, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.NotEqual(t, "half-written", d.Notes)
}

func TestRepository_UpdateCannotChangeID(t *testing.T) {
	ctx := context.Background()
	repo := seededStore().Products

	updated, err := repo.Update(ctx, "2", func(p *entity.Product) error {
		p.ID = "other"
		p.IsActive = false
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "2", updated.ID)
	assert.False(t, updated.IsActive)

	_, err = repo.Update(ctx, "missing", func(*entity.Product) error { return nil })
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestRepository_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := seededStore().Leads

	require.NoError(t, repo.Remove(ctx, "3"))
	require.NoError(t, repo.Remove(ctx, "3"))
	require.NoError(t, repo.Remove(ctx, "does-not-exist"))
	assert.Equal(t, 4, repo.Count())

	_, err := repo.FindByID(ctx, "3")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestInvoiceRepository_NumberingContinuesAfterSeed(t *testing.T) {
	repo := seededStore().Invoices

	assert.Equal(t, "INV-003", repo.NextInvoiceNumber())
	assert.Equal(t, "INV-004", repo.NextInvoiceNumber())

	// numbers are not reused after delete
	require.NoError(t, repo.Remove(context.Background(), "2"))
	assert.Equal(t, "INV-005", repo.NextInvoiceNumber())
}

func TestInvoiceRepository_EmptyStartsAtOne(t *testing.T) {
	repo := NewInvoiceRepository()
	repo.Seed([]entity.Invoice{{ID: "x", InvoiceNumber: "custom"}})
	assert.Equal(t, "INV-001", repo.NextInvoiceNumber())
}
