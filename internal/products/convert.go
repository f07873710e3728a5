package products

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/db/models"
)

// ToCatalog maps a stored row onto the catalog shape.
func ToCatalog(m models.Product) catalog.Product {
	colors := make([]catalog.Color, 0, len(m.Colors))
	for _, c := range m.Colors {
		colors = append(colors, catalog.Color{Name: c.Name, Value: c.Value})
	}
	return catalog.Product{
		ID:             m.ID,
		Slug:           m.Slug,
		Name:           m.Name,
		Description:    m.Description,
		Price:          m.Price,
		CompareAtPrice: m.CompareAtPrice,
		Images:         nonNil(m.Images),
		Category:       m.Category,
		Collections:    nonNil(m.Collections),
		Tags:           nonNil(m.Tags),
		Sizes:          nonNil(m.Sizes),
		Colors:         colors,
		Featured:       m.Featured,
		Trending:       m.Trending,
		New:            m.IsNew,
		InStock:        m.InStock,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

// FromCatalog maps a catalog product onto a row for seeding.
func FromCatalog(p catalog.Product) models.Product {
	colors := make([]models.ProductColor, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, models.ProductColor{Name: c.Name, Value: c.Value})
	}
	return models.Product{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Images:         nonNil(p.Images),
		Category:       p.Category,
		Collections:    nonNil(p.Collections),
		Tags:           nonNil(p.Tags),
		Sizes:          nonNil(p.Sizes),
		Colors:         colors,
		Featured:       p.Featured,
		Trending:       p.Trending,
		IsNew:          p.New,
		InStock:        p.InStock,
		CreatedAt:      p.CreatedAt,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
