package catalog

import (
	"sort"
	"strings"
)

const (
	SortRecommended = "Recommended"
	SortNewest      = "Newest Arrivals"
	SortPriceAsc    = "Price: Low to High"
	SortPriceDesc   = "Price: High to Low"
	SortRotHigh     = "Rot Level: High"
)

const AllCategories = "ALL"

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Category string
	Style    string
	Color    string
	Brand    string
	Size     string
	InStock  bool
}

func (f Filter) Match(p Product) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, AllCategories) && p.Category != f.Category {
		return false
	}
	if f.Style != "" && p.Style != f.Style {
		return false
	}
	if f.Color != "" && p.Color != f.Color {
		return false
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.Size != "" && !p.HasSize(f.Size) {
		return false
	}
	if f.InStock && !p.InStock() {
		return false
	}
	return true
}

// Apply filters then sorts products. The input slice is not modified and
// unknown sort names keep the stored order.
func Apply(products []Product, f Filter, sortBy string) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	var less func(a, b Product) bool
	switch sortBy {
	case SortNewest:
		less = func(a, b Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortRotHigh:
		less = func(a, b Product) bool { return a.Rot > b.Rot }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
