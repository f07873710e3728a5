package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/pkg/db/models"
)

// UserDTO is the account as the API returns it. The password hash never
// leaves this package's callers.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO is a sign-up that already passed policy checks and hashing.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	dto := UserDTO{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
	if u.LastLoginAt != nil {
		at := u.LastLoginAt.UTC()
		dto.LastLoginAt = &at
	}
	return &dto
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{Email: c.Email, PasswordHash: c.PasswordHash, IsActive: true}
}
