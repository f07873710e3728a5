package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Repository persists shopper accounts. Lookups return gorm.ErrRecordNotFound
// for missing rows; callers decide whether that is an auth failure.
type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts a new user. A taken email yields CONFLICT.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	err := r.db.WithContext(ctx).Create(user).Error
	switch {
	case err == nil:
		return user, nil
	case db.IsUniqueViolation(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already registered")
	}
	return nil, err
}

// FindByEmail expects an already normalized (trimmed, lowercased) email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) first(ctx context.Context, where string, arg any) (*models.User, error) {
	user := new(models.User)
	if err := r.db.WithContext(ctx).Where(where, arg).Take(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// RecordLogin stamps last_login_at and, when newHash is set, replaces the
// stored password hash in the same statement.
func (r *Repository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time, newHash string) error {
	changes := map[string]any{"last_login_at": at}
	if newHash != "" {
		changes["password_hash"] = newHash
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).UpdateColumns(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the repository's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
