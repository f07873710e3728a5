// Command storefront is a terminal shopping client for the storefront API.
// Cart, wishlist and session state persist between invocations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/internal/account"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/internal/remote"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/blobstore"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/redis"
)

type app struct {
	out      io.Writer
	logg     *logger.Logger
	rules    pricing.Rules
	client   *remote.Client
	browser  *catalog.Browser
	cart     *cart.Store
	wishlist *wishlist.Store
	account  *account.Store
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) (err error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	logg := logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Env:         cfg.App.Env,
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	var redisClient *redis.Client
	if cfg.State.Backend == string(enums.StateBackendRedis) {
		if redisClient, err = redis.New(ctx, cfg.Redis.RedisConfig(), logg); err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
	}
	storage, err := blobstore.Open(cfg.State, redisClient)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, storage, logg, out)
	if err != nil {
		return err
	}
	return a.dispatch(ctx, args)
}

func newApp(ctx context.Context, cfg *config.ClientConfig, storage blobstore.Store, logg *logger.Logger, out io.Writer) (*app, error) {
	a := &app{out: out, logg: logg, rules: pricing.RulesFromConfig(cfg.Checkout)}

	client, err := remote.NewFromConfig(cfg.API, remote.TokenFunc(func() string {
		if a.account == nil {
			return ""
		}
		return a.account.AccessToken()
	}), logg)
	if err != nil {
		return nil, err
	}
	a.client = client

	if a.browser, err = catalog.NewBrowser(client); err != nil {
		return nil, err
	}
	if a.account, err = account.NewStore(ctx, account.StoreParams{Auth: client, Storage: storage, Logger: logg.Named("account")}); err != nil {
		return nil, err
	}
	if a.cart, err = cart.NewStore(ctx, cart.StoreParams{Storage: storage, Logger: logg.Named("cart")}); err != nil {
		return nil, err
	}
	if a.wishlist, err = wishlist.NewStore(ctx, wishlist.StoreParams{Remote: client, Users: a.account, Storage: storage, Logger: logg.Named("wishlist")}); err != nil {
		return nil, err
	}
	return a, nil
}

func describe(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		msg := fmt.Sprintf("error [%s]: %s", typed.Code(), typed.Message())
		if details := typed.Details(); details != nil {
			msg += fmt.Sprintf(" %v", details)
		}
		return msg
	}
	return "error: " + err.Error()
}
