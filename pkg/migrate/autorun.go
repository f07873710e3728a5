package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table the storefront owns, parents first.
func Models() []any {
	return []any{
		&models.User{},
		&models.Product{},
		&models.WishlistItem{},
		&models.Order{},
	}
}

// AutoMigrate creates the schema through GORM; used for SQLite where the
// Postgres-flavoured goose files do not apply.
func AutoMigrate(ctx context.Context, conn *gorm.DB) error {
	if err := conn.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("gorm automigrate: %w", err)
	}
	return nil
}

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "driver": client.Driver()})

	if client.Driver() == db.DriverSQLite {
		logg.Info(ctx, "running gorm automigrate (dev auto-run)")
		return AutoMigrate(ctx, client.DB())
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	runner, err := NewRunner(sqlDB, "")
	if err != nil {
		return err
	}
	applied, err := runner.Apply(ctx, "up")
	if err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	logg.Info(logg.WithField(ctx, "applied", len(applied)), "goose migrations completed (dev auto-run)")
	return nil
}
