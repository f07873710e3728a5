package remote

import (
	"github.com/angelmondragon/storefront/internal/account"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/wishlist"
)

var (
	_ account.Authenticator = (*Client)(nil)
	_ wishlist.Remote       = (*Client)(nil)
	_ catalog.Source        = (*Client)(nil)
	_ checkout.OrderPlacer  = (*Client)(nil)
)
