package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config is the HTTP adapter configuration.
type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Catalog       CatalogConfig
	Idempotency   IdempotencyConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ClientConfig configures the shopper-facing client.
type ClientConfig struct {
	App      AppConfig
	API      APIClientConfig
	State    StateConfig
	Redis    ClientRedisConfig
	Checkout CheckoutConfig
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing client config: %w", err)
	}
	if err := cfg.State.ensureDir(); err != nil {
		return nil, err
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"STOREFRONT_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFRONT_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONT_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONT_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONT_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"STOREFRONT_DB_SQLITE_PATH" default:"storefront.db"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"STOREFRONT_DB_SLOW_QUERY" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ClientRedisConfig is only consulted when the client keeps its state in Redis.
type ClientRedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_CLIENT_REDIS_URL"`
	Password     string        `envconfig:"STOREFRONT_CLIENT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_CLIENT_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_CLIENT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_CLIENT_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_CLIENT_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// RedisConfig widens the client settings into the shape pkg/redis expects.
func (c ClientRedisConfig) RedisConfig() RedisConfig {
	return RedisConfig{
		URL:          c.URL,
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     2,
		MinIdleConns: 0,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

type JWTConfig struct {
	Secret                 string `envconfig:"STOREFRONT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"STOREFRONT_JWT_ISSUER" default:"storefront"`
	ExpirationMinutes      int    `envconfig:"STOREFRONT_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"STOREFRONT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOREFRONT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOREFRONT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOREFRONT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOREFRONT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOREFRONT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	SignInWindow     time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNIN_WINDOW" default:"1m"`
	SignInEmailLimit int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNIN_EMAIL_LIMIT" default:"5"`
	SignInIPLimit    int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNIN_IP_LIMIT" default:"20"`
	SignUpWindow     time.Duration `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignUpEmailLimit int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignUpIPLimit    int           `envconfig:"STOREFRONT_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type CatalogConfig struct {
	CacheTTL      time.Duration `envconfig:"STOREFRONT_CATALOG_CACHE_TTL" default:"5m"`
	FeaturedLimit int           `envconfig:"STOREFRONT_CATALOG_FEATURED_LIMIT" default:"8"`
}

// IdempotencyConfig governs replay of Idempotency-Key requests.
type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"STOREFRONT_IDEMPOTENCY_TTL" default:"24h"`
}

// CheckoutConfig carries the pricing rules shared by the cart summary and checkout.
type CheckoutConfig struct {
	Currency              string `envconfig:"STOREFRONT_CURRENCY" default:"INR"`
	FreeShippingThreshold int64  `envconfig:"STOREFRONT_FREE_SHIPPING_THRESHOLD" default:"99900"`
	StandardShipping      int64  `envconfig:"STOREFRONT_STANDARD_SHIPPING" default:"9900"`
	ExpressShipping       int64  `envconfig:"STOREFRONT_EXPRESS_SHIPPING" default:"19900"`
	TaxRate               string `envconfig:"STOREFRONT_TAX_RATE" default:"0.18"`
}

// Tax parses TaxRate; validate has already rejected malformed values.
func (c CheckoutConfig) Tax() decimal.Decimal {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero
	}
	return rate
}

func (c CheckoutConfig) validate() error {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid STOREFRONT_TAX_RATE %q: %w", c.TaxRate, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("STOREFRONT_TAX_RATE must be within [0,1], got %s", c.TaxRate)
	}
	if c.FreeShippingThreshold < 0 || c.StandardShipping < 0 || c.ExpressShipping < 0 {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
	SeedCatalog bool `envconfig:"STOREFRONT_SEED_CATALOG" default:"false"`
}

type APIClientConfig struct {
	BaseURL        string        `envconfig:"STOREFRONT_API_BASE_URL" default:"http://localhost:8080"`
	RequestTimeout time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"10s"`
}

// StateConfig selects where the client keeps its persisted stores.
type StateConfig struct {
	Backend   string `envconfig:"STOREFRONT_STATE_BACKEND" default:"file"`
	Dir       string `envconfig:"STOREFRONT_STATE_DIR"`
	Namespace string `envconfig:"STOREFRONT_STATE_NAMESPACE" default:"default"`
}

func (s *StateConfig) ensureDir() error {
	if s.Dir != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving state dir: %w", err)
	}
	s.Dir = filepath.Join(home, ".storefront")
	return nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
