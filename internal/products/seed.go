package products

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed upserts products by id, overwriting every column except created_at.
// Each product is attempted; failures are combined.
func Seed(ctx context.Context, db *gorm.DB, items []catalog.Product) (int, error) {
	var (
		errs    error
		written int
	)
	for _, item := range items {
		row := FromCatalog(item)
		err := db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"slug", "name", "description", "price", "compare_at_price", "images", "category",
				"collections", "tags", "sizes", "colors", "featured", "trending", "is_new", "in_stock", "updated_at",
			}),
		}).Create(&row).Error
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed product %s: %w", item.Slug, err))
			continue
		}
		written++
	}
	return written, errs
}

// Count returns how many products are stored.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}
