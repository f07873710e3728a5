package wishlist

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the database-backed wishlist used by the API.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListWishlist returns userID's rows with their products, oldest first.
func (r *Repository) ListWishlist(ctx context.Context, userID string) ([]Item, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	var rows []models.WishlistItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", uid).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, toItem(row))
	}
	return items, nil
}

// InsertWishlistItem saves productID for userID and ignores duplicates. The
// stored row is returned either way.
func (r *Repository) InsertWishlistItem(ctx context.Context, userID, productID string) (Item, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return Item{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var product models.Product
	err = r.db.WithContext(ctx).Where("id = ?", productID).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": productID})
	}
	if err != nil {
		return Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	row := models.WishlistItem{UserID: uid, ProductID: productID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&row).Error; err != nil {
		return Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wishlist item")
	}

	var stored models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", uid, productID).
		First(&stored).Error; err != nil {
		return Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wishlist item")
	}
	stored.Product = &product
	return toItem(stored), nil
}

// DeleteWishlistItem removes the row if present.
func (r *Repository) DeleteWishlistItem(ctx context.Context, userID, productID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", uid, productID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist item")
	}
	return nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "a valid user is required")
	}
	return uid, nil
}

func toItem(row models.WishlistItem) Item {
	item := Item{
		ID:        row.ID.String(),
		UserID:    row.UserID.String(),
		ProductID: row.ProductID,
		CreatedAt: row.CreatedAt.UTC(),
	}
	if row.Product != nil {
		item.Product = products.ToCatalog(*row.Product)
	}
	return item
}
