package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func leadsFrom(sources ...entity.LeadSource) []*entity.Lead {
	out := make([]*entity.Lead, 0, len(sources))
	for _, s := range sources {
		out = append(out, &entity.Lead{Source: s})
	}
	return out
}

func TestLeadSourceBreakdown(t *testing.T) {
	got := LeadSourceBreakdown(leadsFrom(entity.SourceFacebook, entity.SourceFacebook, entity.SourceGoogle))

	require.Len(t, got, 2)
	assert.Equal(t, SourceShare{Source: entity.SourceFacebook, Count: 2, Percentage: 66.7}, got[0])
	assert.Equal(t, SourceShare{Source: entity.SourceGoogle, Count: 1, Percentage: 33.3}, got[1])
}

func TestLeadSourceBreakdown_Empty(t *testing.T) {
	assert.Empty(t, LeadSourceBreakdown(nil))
}

func TestTopLeadSource(t *testing.T) {
	tests := []struct {
		name   string
		leads  []*entity.Lead
		want   entity.LeadSource
		wantOK bool
	}{
		{"no leads", nil, "", false},
		{"clear winner", leadsFrom(entity.SourceGoogle, entity.SourceReferral, entity.SourceReferral), entity.SourceReferral, true},
		{"tie goes to first seen", leadsFrom(entity.SourceInstagram, entity.SourceGoogle), entity.SourceInstagram, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TopLeadSource(tt.leads)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDealStageBreakdown(t *testing.T) {
	deals := []*entity.Deal{
		{Stage: entity.StageContacted, Value: entity.Money(100)},
		{Stage: entity.StageClosedWon, Value: entity.Money(300)},
		{Stage: entity.StageContacted, Value: entity.Money(50)},
	}
	got := DealStageBreakdown(deals)

	require.Len(t, got, 2)
	assert.Equal(t, entity.StageContacted, got[0].Stage)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "150", got[0].Value.String())
	assert.Equal(t, entity.StageClosedWon, got[1].Stage)
	assert.Equal(t, "300", got[1].Value.String())
}

func TestDealsByStage_AllColumnsInPipelineOrder(t *testing.T) {
	cols := DealsByStage(fixtureSnapshot().Deals)

	require.Len(t, cols, len(entity.DealStages))
	for i, st := range entity.DealStages {
		assert.Equal(t, st, cols[i].Stage)
	}
	assert.Empty(t, cols[0].Deals)
	require.Len(t, cols[4].Deals, 1)
	assert.Equal(t, "3620", cols[4].Value.String())
}

func TestCategoryCounts_ZeroFilled(t *testing.T) {
	counts := CategoryCounts([]*entity.Product{
		{Category: entity.CategoryWebsite},
		{Category: entity.CategoryWebsite},
		{Category: entity.CategoryHosting},
	})

	assert.Equal(t, []CategoryCount{
		{entity.CategoryWebsite, 2},
		{entity.CategoryDomain, 0},
		{entity.CategoryEmail, 0},
		{entity.CategoryHosting, 1},
	}, counts)
}

func TestThisMonth_ComparesMonthOnly(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	leads := []*entity.Lead{
		{ID: "a", CreatedAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", CreatedAt: time.Date(2019, time.March, 31, 0, 0, 0, 0, time.UTC)},
		{ID: "c", CreatedAt: time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)},
	}
	invoices := []*entity.Invoice{
		{Status: entity.InvoicePaid, Amount: entity.Money(10), CreatedAt: now},
		{Status: entity.InvoiceSent, Amount: entity.Money(99), CreatedAt: now},
		{Status: entity.InvoicePaid, Amount: entity.Money(5), CreatedAt: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := ThisMonth(leads, invoices, now)

	assert.Equal(t, 2, got.NewLeads)
	assert.Equal(t, "a", got.Leads[0].ID)
	assert.Equal(t, "b", got.Leads[1].ID)
	assert.Len(t, got.Invoices, 2)
	assert.Equal(t, "10", got.Revenue.String())
}

func TestRecentLeads_LimitsAndOrders(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	var leads []*entity.Lead
	for i := 0; i < 7; i++ {
		leads = append(leads, &entity.Lead{ID: string(rune('a' + i)), CreatedAt: base.AddDate(0, 0, i)})
	}

	got := RecentLeads(leads, DefaultTopN)

	require.Len(t, got, 5)
	assert.Equal(t, "g", got[0].ID)
	assert.Equal(t, "c", got[4].ID)
	// input order untouched
	assert.Equal(t, "a", leads[0].ID)
}

func TestUpcomingDeals_SkipsClosed(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	deals := []*entity.Deal{
		{ID: "won", Stage: entity.StageClosedWon, CloseDate: base},
		{ID: "lost", Stage: entity.StageClosedLost, CloseDate: base},
		{ID: "late", Stage: entity.StageNegotiation, CloseDate: base.AddDate(0, 1, 0)},
		{ID: "soon", Stage: entity.StageNewLead, CloseDate: base.AddDate(0, 0, 1)},
	}

	got := UpcomingDeals(deals, DefaultTopN)

	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestExportWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(fixtureSnapshot(), time.Now(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Leads", "Deals", "Invoices"}, f.GetSheetList())

	rows, err := f.GetRows("Leads")
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Equal(t, "Sarah Johnson", rows[1][1])

	v, err := f.GetCellValue("Invoices", "A3")
	require.NoError(t, err)
	assert.Equal(t, "INV-002", v)
}
