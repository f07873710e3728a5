// Package products serves catalog queries from the database.
package products

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"gorm.io/gorm"
)

// DefaultFeaturedLimit caps ListFeaturedProducts when the caller passes <= 0.
const DefaultFeaturedLimit = 8

// Repository reads products through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a product repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListProducts returns the whole catalog, newest first.
func (r *Repository) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toCatalog(rows), nil
}

// GetProductBySlug returns NOT_FOUND when no product has that slug.
func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (catalog.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	var row models.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"slug": slug})
	}
	if err != nil {
		return catalog.Product{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get product")
	}
	return ToCatalog(row), nil
}

// ListFeaturedProducts returns up to limit featured products, newest first.
func (r *Repository) ListFeaturedProducts(ctx context.Context, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return toCatalog(rows), nil
}

// FindByIDs returns the products with the given ids keyed by id.
func (r *Repository) FindByIDs(ctx context.Context, ids []string) (map[string]catalog.Product, error) {
	out := make(map[string]catalog.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find products")
	}
	for _, row := range rows {
		out[row.ID] = ToCatalog(row)
	}
	return out, nil
}

// Exists reports whether a product with id is stored.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	return count > 0, nil
}

func toCatalog(rows []models.Product) []catalog.Product {
	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToCatalog(row))
	}
	return out
}
