package catalog

import "slices"

// Facets lists the distinct filter values present in a product slice, in
// first-seen order.
type Facets struct {
	Categories  []string `json:"categories"`
	Collections []string `json:"collections"`
	Sizes       []string `json:"sizes"`
	Colors      []Color  `json:"colors"`
}

func Categories(products []Product) []string {
	var out []string
	for _, p := range products {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

func Collections(products []Product) []string {
	var out []string
	for _, p := range products {
		for _, c := range p.Collections {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// FacetsOf computes every facet at once.
func FacetsOf(products []Product) Facets {
	f := Facets{
		Categories:  Categories(products),
		Collections: Collections(products),
	}
	for _, p := range products {
		for _, s := range p.Sizes {
			if !slices.Contains(f.Sizes, s) {
				f.Sizes = append(f.Sizes, s)
			}
		}
		for _, c := range p.Colors {
			if !slices.ContainsFunc(f.Colors, func(x Color) bool { return x.Name == c.Name }) {
				f.Colors = append(f.Colors, c)
			}
		}
	}
	return f
}
