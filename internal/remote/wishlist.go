package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/angelmondragon/storefront/internal/wishlist"
)

// The server scopes wishlist rows to the bearer token; userID is only used
// to stamp the returned rows.

func (c *Client) ListWishlist(ctx context.Context, userID string) ([]wishlist.Item, error) {
	var out []wishlist.Item
	if err := c.do(ctx, request{method: http.MethodGet, path: "/wishlist"}, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].UserID == "" {
			out[i].UserID = userID
		}
	}
	return out, nil
}

func (c *Client) InsertWishlistItem(ctx context.Context, userID, productID string) (wishlist.Item, error) {
	var out wishlist.Item
	body := map[string]string{"product_id": productID}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/wishlist", body: body}, &out); err != nil {
		return wishlist.Item{}, err
	}
	if out.UserID == "" {
		out.UserID = userID
	}
	return out, nil
}

func (c *Client) DeleteWishlistItem(ctx context.Context, _ string, productID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/wishlist/" + url.PathEscape(productID)}, nil)
}
