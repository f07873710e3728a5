package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

// PlaceOrder submits req under a fresh idempotency key.
func (c *Client) PlaceOrder(ctx context.Context, req orders.PlaceRequest) (orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/orders",
		body:    req,
		headers: map[string]string{idempotencyHeader: uuid.NewString()},
	}, &out)
	return out, err
}

func (c *Client) ListOrders(ctx context.Context, params orders.ListParams) (orders.ListResult, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor != "" {
		query.Set("cursor", params.Cursor)
	}
	var out orders.ListResult
	err := c.do(ctx, request{method: http.MethodGet, path: "/orders", query: query}, &out)
	return out, err
}
