package enums

// SortKey orders the shop grid.
type SortKey string

const (
	SortFeatured     SortKey = "featured"
	SortNewest       SortKey = "newest"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortTrending     SortKey = "trending"

	DefaultSortKey = SortFeatured
)

var sortKeys = values[SortKey]{"sort key", []SortKey{
	SortFeatured, SortNewest, SortPriceLowHigh, SortPriceHighLow, SortTrending,
}}

// SortKeys lists every accepted key in display order.
func SortKeys() []SortKey { return sortKeys.list() }

func (s SortKey) String() string { return string(s) }
func (s SortKey) IsValid() bool  { return sortKeys.has(s) }

// ParseSortKey converts raw input into a SortKey. Empty input yields the default.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return DefaultSortKey, nil
	}
	return sortKeys.parse(value)
}
