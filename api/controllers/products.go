package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const maxFeaturedLimit = 48

func ListProducts(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := source.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// ListFeaturedProducts honours ?limit=, falling back to defaultLimit.
func ListFeaturedProducts(source catalog.Source, defaultLimit int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, maxFeaturedLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := source.ListFeaturedProducts(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func GetProduct(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}
		product, err := source.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// Shop runs the filter engine. Category and collection come from the path
// when routed there; a collection may also ride in the query.
func Shop(browser *catalog.Browser, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		spec, err := catalog.DecodeQuery(query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		spec.Category = strings.TrimSpace(chi.URLParam(r, "category"))
		spec.Collection = strings.TrimSpace(chi.URLParam(r, "collection"))
		if spec.Collection == "" {
			spec.Collection = validators.SanitizeString(query.Get(catalog.ParamCollection), 128)
		}

		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := browser.Shop(r.Context(), spec, page.Number, page.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
