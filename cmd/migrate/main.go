// Command migrate manages the storefront schema and sample catalog.
//
//	migrate -cmd=up|down|status|version|create|validate|automigrate|seed
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "command: up|down|status|version|create|validate|automigrate|seed")
	flag.StringVar(&opts.dir, "dir", migrate.DefaultDir, "goose migrations directory")
	flag.StringVar(&opts.name, "name", "", "migration name (for create)")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()
	_ = godotenv.Load()

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	// create and validate only touch the filesystem.
	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return fmt.Errorf("missing -name")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err == nil {
			fmt.Println("created", path)
		}
		return err
	case "validate":
		if err := migrate.ValidateDir(opts.dir); err != nil {
			return err
		}
		fmt.Println("migrations valid")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Env:         cfg.App.Env,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"cmd": opts.cmd, "dir": opts.dir})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "database unavailable", err)
		return err
	}
	defer client.Close()

	switch opts.cmd {
	case "automigrate":
		return migrate.AutoMigrate(ctx, client.DB())
	case "seed":
		written, err := products.Seed(ctx, client.DB(), catalog.SampleProducts())
		if err != nil {
			return fmt.Errorf("seeded %d products before failing: %w", written, err)
		}
		logg.Info(logg.WithField(ctx, "products", written), "catalog seeded")
		return nil
	}

	if client.Driver() == db.DriverSQLite {
		return fmt.Errorf("goose migrations target postgres; use -cmd=automigrate for sqlite")
	}
	sqlDB, err := client.DB().DB()
	if err != nil {
		return err
	}
	runner, err := migrate.NewRunner(sqlDB, opts.dir)
	if err != nil {
		return err
	}

	var lines []string
	switch opts.cmd {
	case "up", "down", "status":
		lines, err = runner.Apply(ctx, opts.cmd)
	case "version":
		if opts.version == "" {
			return fmt.Errorf("missing -version")
		}
		lines, err = runner.MigrateTo(ctx, opts.version)
	default:
		return fmt.Errorf("unknown command")
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	if err == nil {
		if current, verr := runner.Version(ctx); verr == nil {
			logg.Info(logg.WithField(ctx, "version", current), "schema at version")
		}
	}
	return err
}
