package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	if slug == "" {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	var out catalog.Product
	err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + url.PathEscape(slug)}, &out)
	return out, err
}

func (c *Client) ListFeaturedProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out []catalog.Product
	if err := c.do(ctx, request{method: http.MethodGet, path: "/products/featured", query: query}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
