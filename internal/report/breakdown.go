package report

import (
	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type SourceShare struct {
	Source     entity.LeadSource `json:"source"`
	Count      int               `json:"count"`
	Percentage float64           `json:"percentage"`
}

// LeadSourceBreakdown counts leads per source. Sources appear in the order
// they are first seen; sources with no leads are left out.
func LeadSourceBreakdown(leads []*entity.Lead) []SourceShare {
	counts := map[entity.LeadSource]int{}
	var order []entity.LeadSource
	for _, l := range leads {
		if _, seen := counts[l.Source]; !seen {
			order = append(order, l.Source)
		}
		counts[l.Source]++
	}

	out := make([]SourceShare, 0, len(order))
	for _, src := range order {
		out = append(out, SourceShare{
			Source:     src,
			Count:      counts[src],
			Percentage: percent(counts[src], len(leads)),
		})
	}
	return out
}

// TopLeadSource returns the source with the most leads. Ties go to the
// source seen first. ok is false when there are no leads.
func TopLeadSource(leads []*entity.Lead) (source entity.LeadSource, ok bool) {
	best := -1
	for _, share := range LeadSourceBreakdown(leads) {
		if share.Count > best {
			best = share.Count
			source = share.Source
			ok = true
		}
	}
	return source, ok
}

type StageSummary struct {
	Stage entity.DealStage `json:"stage"`
	Count int              `json:"count"`
	Value decimal.Decimal  `json:"value"`
}

// DealStageBreakdown counts deals and sums their value per stage, in order
// of first appearance.
func DealStageBreakdown(deals []*entity.Deal) []StageSummary {
	index := map[entity.DealStage]int{}
	var out []StageSummary
	for _, d := range deals {
		i, seen := index[d.Stage]
		if !seen {
			i = len(out)
			index[d.Stage] = i
			out = append(out, StageSummary{Stage: d.Stage, Value: decimal.Zero})
		}
		out[i].Count++
		out[i].Value = out[i].Value.Add(d.Value)
	}
	if out == nil {
		out = []StageSummary{}
	}
	return out
}

type PipelineColumn struct {
	Stage entity.DealStage `json:"stage"`
	Deals []*entity.Deal   `json:"deals"`
	Value decimal.Decimal  `json:"value"`
}

// DealsByStage lays the deals out as pipeline columns, one per stage, in
// pipeline order. Empty stages get an empty column.
func DealsByStage(deals []*entity.Deal) []PipelineColumn {
	cols := make([]PipelineColumn, len(entity.DealStages))
	pos := map[entity.DealStage]int{}
	for i, st := range entity.DealStages {
		cols[i] = PipelineColumn{Stage: st, Deals: []*entity.Deal{}, Value: decimal.Zero}
		pos[st] = i
	}
	for _, d := range deals {
		i, ok := pos[d.Stage]
		if !ok {
			continue
		}
		cols[i].Deals = append(cols[i].Deals, d)
		cols[i].Value = cols[i].Value.Add(d.Value)
	}
	return cols
}

type CategoryCount struct {
	Category entity.ProductCategory `json:"category"`
	Count    int                    `json:"count"`
}

// CategoryCounts counts products per category; every category is present.
func CategoryCounts(products []*entity.Product) []CategoryCount {
	counts := map[entity.ProductCategory]int{}
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(entity.ProductCategories))
	for _, c := range entity.ProductCategories {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}
