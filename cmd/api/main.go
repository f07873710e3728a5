package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/api/routes"
	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/users"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/auth/session"
	"github.com/angelmondragon/storefront/pkg/clock"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Env:         cfg.App.Env,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}
	if cfg.FeatureFlags.SeedCatalog {
		if n, err := products.Count(ctx, dbClient.DB()); err != nil {
			return err
		} else if n == 0 {
			written, err := products.Seed(ctx, dbClient.DB(), catalog.SampleProducts())
			if err != nil {
				return err
			}
			logg.Info(logg.WithField(ctx, "products", written), "catalog seeded")
		}
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	clk := clock.NewRealClock()
	productRepo := products.NewRepository(dbClient.DB())
	productSource := products.NewCachedSource(productRepo, redisClient, cfg.Catalog.CacheTTL, metrics.NewCacheMetrics(reg), logg)
	browser, err := catalog.NewBrowser(productSource)
	if err != nil {
		return err
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Clock:          clk,
	})
	if err != nil {
		return err
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:     orders.NewRepository(dbClient.DB()),
		Products: productRepo,
		Rules:    pricing.RulesFromConfig(cfg.Checkout),
		Clock:    clk,
	})
	if err != nil {
		return err
	}

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		RateLimits:  redisClient,
		Idempotency: redisClient,
		Sessions:    sessionManager,
		Auth:        authService,
		Products:    productSource,
		Browser:     browser,
		Wishlist:    wishlist.NewRepository(dbClient.DB()),
		Orders:      ordersService,
		Metrics:     metrics.NewOperationMetrics(reg, "http"),
		Gatherer:    reg,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": server.Addr, "driver": dbClient.Driver()})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
