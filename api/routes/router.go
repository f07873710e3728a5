package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/auth"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/wishlist"
	"github.com/angelmondragon/storefront/pkg/auth/session"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Deps is everything the HTTP surface needs. Nil stores disable the
// middleware that depends on them.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DB    controllers.Pinger
	Redis controllers.Pinger

	RateLimits  middleware.RateLimitStore
	Idempotency middleware.IdempotencyStore
	Sessions    session.AccessSessionChecker

	Auth     auth.Service
	Products catalog.Source
	Browser  *catalog.Browser
	Wishlist wishlist.Remote
	Orders   orders.Service

	Metrics  *metrics.OperationMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{"db": d.DB, "redis": d.Redis}, logg))
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(middleware.SignUpPolicy(cfg.AuthRateLimit), d.RateLimits, logg)).
				Post("/signup", controllers.AuthSignUp(d.Auth, logg))
			r.With(middleware.AuthRateLimit(middleware.SignInPolicy(cfg.AuthRateLimit), d.RateLimits, logg)).
				Post("/signin", controllers.AuthSignIn(d.Auth, logg))
			r.Post("/signout", controllers.AuthSignOut(d.Auth, logg))
			r.Get("/session", controllers.AuthSession(d.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Products, logg))
			r.Get("/featured", controllers.ListFeaturedProducts(d.Products, cfg.Catalog.FeaturedLimit, logg))
			r.Get("/{slug}", controllers.GetProduct(d.Products, logg))
		})

		r.Route("/shop", func(r chi.Router) {
			shop := controllers.Shop(d.Browser, logg)
			r.Get("/", shop)
			r.Get("/category/{category}", shop)
			r.Get("/collection/{collection}", shop)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.ListWishlist(d.Wishlist, logg))
				r.Post("/", controllers.AddWishlistItem(d.Wishlist, logg))
				r.Delete("/{productId}", controllers.RemoveWishlistItem(d.Wishlist, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(d.Orders, logg))
				r.With(middleware.Idempotency(d.Idempotency, middleware.IdempotencyPolicy{TTL: cfg.Idempotency.TTL}, logg)).
					Post("/", controllers.PlaceOrder(d.Orders, logg))
			})
		})
	})

	return r
}
