package report

import (
	"sort"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const DefaultTopN = 5

// RecentLeads returns up to n leads, newest first.
func RecentLeads(leads []*entity.Lead, n int) []*entity.Lead {
	out := append([]*entity.Lead{}, leads...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return head(out, n)
}

// UpcomingDeals returns up to n open deals, soonest close date first.
func UpcomingDeals(deals []*entity.Deal, n int) []*entity.Deal {
	out := make([]*entity.Deal, 0, len(deals))
	for _, d := range deals {
		if d.Stage.IsOpen() {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CloseDate.Before(out[j].CloseDate)
	})
	return head(out, n)
}

func head[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
