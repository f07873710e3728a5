package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Source is the product query surface of the remote collaborator.
type Source interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductBySlug(ctx context.Context, slug string) (Product, error)
	ListFeaturedProducts(ctx context.Context, limit int) ([]Product, error)
}

// ShopResult is one rendered shop grid.
type ShopResult struct {
	Spec   FilterSpec `json:"spec"`
	Page   Page       `json:"page"`
	Facets Facets     `json:"facets"`
}

// Browser runs the filter engine over a Source.
type Browser struct {
	source Source
}

func NewBrowser(source Source) (*Browser, error) {
	if source == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog source is required")
	}
	return &Browser{source: source}, nil
}

// Shop lists the full catalog, applies spec and returns the requested page.
// Facets describe the unfiltered catalog so the sidebar keeps every option.
func (b *Browser) Shop(ctx context.Context, spec FilterSpec, page, perPage int) (ShopResult, error) {
	all, err := b.source.ListProducts(ctx)
	if err != nil {
		return ShopResult{}, err
	}
	return ShopResult{
		Spec:   spec,
		Page:   Paginate(Apply(all, spec), page, perPage),
		Facets: FacetsOf(all),
	}, nil
}

// Product looks up one product. A missing slug is reported as ok=false.
func (b *Browser) Product(ctx context.Context, slug string) (Product, bool, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Product{}, false, nil
	}
	p, err := b.source.GetProductBySlug(ctx, slug)
	if pkgerrors.IsNotFound(err) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

// Featured returns up to limit featured products.
func (b *Browser) Featured(ctx context.Context, limit int) ([]Product, error) {
	return b.source.ListFeaturedProducts(ctx, limit)
}

// Related returns up to limit products sharing p's category, excluding p.
func (b *Browser) Related(ctx context.Context, p Product, limit int) ([]Product, error) {
	all, err := b.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	related := slices.DeleteFunc(slices.Clone(all), func(x Product) bool {
		return x.ID == p.ID || x.Category != p.Category
	})
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// StaticSource serves a fixed product slice.
type StaticSource struct {
	products []Product
}

func NewStaticSource(products []Product) *StaticSource {
	return &StaticSource{products: slices.Clone(products)}
}

func (s *StaticSource) ListProducts(context.Context) ([]Product, error) {
	return Sort(s.products, enums.SortNewest), nil
}

func (s *StaticSource) GetProductBySlug(_ context.Context, slug string) (Product, error) {
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *StaticSource) ListFeaturedProducts(_ context.Context, limit int) ([]Product, error) {
	featured := slices.DeleteFunc(slices.Clone(s.products), func(p Product) bool { return !p.Featured })
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}
