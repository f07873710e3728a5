package catalog

import "github.com/angelmondragon/storefront/pkg/pagination"

// Page is one window of the shop grid.
type Page struct {
	Products   []Product `json:"products"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// Paginate slices products into 1-based pages. Out-of-range pages are empty.
func Paginate(products []Product, page, perPage int) Page {
	p := pagination.NewPage(page, perPage)
	start, end := p.Bounds(len(products))
	window := make([]Product, end-start)
	copy(window, products[start:end])
	return Page{
		Products:   window,
		Page:       p.Number,
		PerPage:    p.Size,
		Total:      len(products),
		TotalPages: p.TotalPages(len(products)),
	}
}
