package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportUseCase_ReflectsLatestState(t *testing.T) {
	ctx := context.Background()
	store := fixtureStore()
	reports := NewReportUseCase(store.Leads, store.Deals, store.Products, store.Invoices)
	reports.Now = fixedClock

	before, err := reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7300", before.PipelineValue.String())

	deals := newDealUseCase(store, quietProducer(), OpenTransitions{})
	_, err = deals.Create(ctx, CreateDealInput{LeadID: "3", Value: ptr(decimal.NewFromInt(700))})
	require.NoError(t, err)

	after, err := reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "8000", after.PipelineValue.String())

	summary, err := reports.InvoiceSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3620", summary.Paid.String())

	cols, err := reports.Pipeline(ctx)
	require.NoError(t, err)
	assert.Len(t, cols[0].Deals, 1)

	var buf bytes.Buffer
	require.NoError(t, reports.Export(ctx, &buf))
	assert.NotZero(t, buf.Len())
}
