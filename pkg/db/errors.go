package db

import (
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
