package catalog

import (
	"cmp"
	"slices"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/money"
)

const (
	// DefaultMinPrice and DefaultMaxPrice bound the price slider, in major units.
	DefaultMinPrice = 0
	DefaultMaxPrice = 5000
)

// FilterSpec is the full shop query state. Prices are major units, inclusive.
type FilterSpec struct {
	Category   string        `json:"category,omitempty"`
	Collection string        `json:"collection,omitempty"`
	Sizes      []string      `json:"sizes,omitempty"`
	Colors     []string      `json:"colors,omitempty"`
	MinPrice   int           `json:"min_price"`
	MaxPrice   int           `json:"max_price"`
	Sort       enums.SortKey `json:"sort"`
}

// DefaultFilterSpec is what an empty shop URL decodes to.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sort:     enums.DefaultSortKey,
	}
}

// Apply filters products by spec and sorts the survivors. products is not modified.
func Apply(products []Product, spec FilterSpec) []Product {
	return Sort(Filter(products, spec), spec.Sort)
}

// Filter keeps products matching every active criterion, preserving input order.
func Filter(products []Product, spec FilterSpec) []Product {
	minPrice := money.FromMajor(spec.MinPrice)
	maxPrice := money.FromMajor(spec.MaxPrice)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if spec.Collection != "" && !p.InCollection(spec.Collection) {
			continue
		}
		if len(spec.Sizes) > 0 && !slices.ContainsFunc(spec.Sizes, p.HasSize) {
			continue
		}
		if len(spec.Colors) > 0 && !slices.ContainsFunc(spec.Colors, p.HasColor) {
			continue
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort returns a stably sorted copy. Unknown keys fall back to featured.
func Sort(products []Product, key enums.SortKey) []Product {
	out := slices.Clone(products)
	switch key {
	case enums.SortPriceLowHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case enums.SortPriceHighLow:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	case enums.SortNewest:
		slices.SortStableFunc(out, func(a, b Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case enums.SortTrending:
		slices.SortStableFunc(out, flagFirst(func(p Product) bool { return p.Trending }))
	default:
		slices.SortStableFunc(out, flagFirst(func(p Product) bool { return p.Featured }))
	}
	return out
}

func flagFirst(flag func(Product) bool) func(a, b Product) int {
	return func(a, b Product) int {
		fa, fb := flag(a), flag(b)
		switch {
		case fa == fb:
			return 0
		case fa:
			return -1
		default:
			return 1
		}
	}
}
