// Package catalog derives the shop grid from a product collection and a
// FilterSpec, and maps FilterSpec to and from shop URLs.
package catalog

import (
	"slices"
	"time"
)

// Color is a named swatch, e.g. {Name: "Sage Green", Value: "#7D8471"}.
type Color struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is owned by the catalog collaborator and never mutated here.
type Product struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	CompareAtPrice *int64    `json:"compare_at_price,omitempty"`
	Images         []string  `json:"images"`
	Category       string    `json:"category"`
	Collections    []string  `json:"collections"`
	Tags           []string  `json:"tags"`
	Sizes          []string  `json:"sizes"`
	Colors         []Color   `json:"colors"`
	Featured       bool      `json:"featured"`
	Trending       bool      `json:"trending"`
	New            bool      `json:"is_new"`
	InStock        bool      `json:"in_stock"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasSize reports whether size is one of the product's sizes.
func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// HasColor reports whether a color with that name is offered.
func (p Product) HasColor(name string) bool {
	return slices.ContainsFunc(p.Colors, func(c Color) bool { return c.Name == name })
}

// InCollection reports whether the product is tagged with collection.
func (p Product) InCollection(collection string) bool {
	return slices.Contains(p.Collections, collection)
}

// OnSale reports whether a compare-at price above the current price exists.
func (p Product) OnSale() bool {
	return p.CompareAtPrice != nil && *p.CompareAtPrice > p.Price
}

// PrimaryImage returns the first image or "".
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
