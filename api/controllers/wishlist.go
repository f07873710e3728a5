package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/wishlist"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type addWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// wishlistHandler adapts fn into a handler bound to the signed-in shopper.
// fn returns the status and payload to write; a nil payload writes 204.
func wishlistHandler(logg *logger.Logger, fn func(r *http.Request, userID string) (int, any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		status, payload, err := fn(r, userID)
		switch {
		case err != nil:
			responses.WriteError(r.Context(), logg, w, err)
		case payload == nil:
			responses.WriteNoContent(w)
		default:
			responses.WriteSuccessStatus(w, status, payload)
		}
	}
}

func ListWishlist(repo wishlist.Remote, logg *logger.Logger) http.HandlerFunc {
	return wishlistHandler(logg, func(r *http.Request, userID string) (int, any, error) {
		items, err := repo.ListWishlist(r.Context(), userID)
		return http.StatusOK, items, err
	})
}

// AddWishlistItem is idempotent: re-adding returns the stored row.
func AddWishlistItem(repo wishlist.Remote, logg *logger.Logger) http.HandlerFunc {
	return wishlistHandler(logg, func(r *http.Request, userID string) (int, any, error) {
		var req addWishlistRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return 0, nil, err
		}
		item, err := repo.InsertWishlistItem(r.Context(), userID, strings.TrimSpace(req.ProductID))
		return http.StatusCreated, item, err
	})
}

func RemoveWishlistItem(repo wishlist.Remote, logg *logger.Logger) http.HandlerFunc {
	return wishlistHandler(logg, func(r *http.Request, userID string) (int, any, error) {
		productID := strings.TrimSpace(chi.URLParam(r, "productId"))
		if productID == "" {
			return 0, nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		return 0, nil, repo.DeleteWishlistItem(r.Context(), userID, productID)
	})
}
