// Package analytics derives dashboard aggregates from the full order and
// product collections. It is the fallback path used when the remote
// analytics endpoint is unavailable; every function here is pure.
package analytics

import (
	"sort"
	"time"

	"shopfront/internal/domain"
)

// DefaultTopN is the ranking depth used by the dashboard.
const DefaultTopN = 5

// MonthlyRevenue buckets order totals by calendar month of now's year.
// The result always has twelve entries, January through December, with
// zero revenue for months that saw no orders.
func MonthlyRevenue(orders []domain.Order, now time.Time) []domain.MonthRevenue {
	year := now.Year()
	var buckets [12]int64
	for _, o := range orders {
		if o.PlacedAt.Year() != year {
			continue
		}
		buckets[int(o.PlacedAt.Month())-1] += o.TotalCents
	}

	series := make([]domain.MonthRevenue, 12)
	for i := 0; i < 12; i++ {
		series[i] = domain.MonthRevenue{
			Month:        time.Month(i + 1).String()[:3],
			RevenueCents: buckets[i],
		}
	}
	return series
}

// TopProducts tallies units sold per product across all orders and returns
// the n best sellers. The sort key is units sold, not revenue; ties break
// by product ID so rankings are deterministic. Products missing from the
// catalog still rank, with an unknown name and zero revenue.
func TopProducts(products []domain.Product, orders []domain.Order, n int) []domain.ProductSales {
	if n <= 0 {
		n = DefaultTopN
	}

	units := make(map[string]int)
	for _, o := range orders {
		for _, item := range o.Items {
			units[item.ProductID] += item.Quantity
		}
	}

	catalog := make(map[string]domain.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	ranked := make([]domain.ProductSales, 0, len(units))
	for id, sold := range units {
		name := "Unknown"
		var price int64
		if p, ok := catalog[id]; ok {
			name = p.Name
			price = p.PriceCents
		}
		ranked = append(ranked, domain.ProductSales{
			ProductID:    id,
			Name:         name,
			UnitsSold:    sold,
			RevenueCents: int64(sold) * price,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].UnitsSold != ranked[j].UnitsSold {
			return ranked[i].UnitsSold > ranked[j].UnitsSold
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
