package service

import (
	"sort"
	"strings"

	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// ApplyFilters runs the catalog filter pipeline over a product
// snapshot: category, then text search, then price range, then
// availability, then sort. Pure and idempotent; the input slice is
// never mutated. Sorts are stable so NONE ordering survives ties.
func ApplyFilters(products []models.Product, filter models.ProductFilter) []models.Product {
	filtered := make([]models.Product, 0, len(products))

	for _, p := range products {
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.SearchQuery != "" && !matchesQuery(p, filter.SearchQuery) {
			continue
		}
		if p.Price < filter.MinPrice || p.Price > filter.MaxPrice {
			continue
		}
		if filter.AvailableOnly && !p.IsAvailable {
			continue
		}
		filtered = append(filtered, p)
	}

	switch filter.SortBy {
	case models.SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	case models.SortNameAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	case models.SortNameDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Name > filtered[j].Name })
	}

	return filtered
}

// matchesQuery is a case-insensitive substring match ORed across name,
// description and category.
func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
