package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "STOREFRONT_APP_ENV"
	EnvPort     = "STOREFRONT_APP_PORT"
	EnvLogLevel = "STOREFRONT_LOG_LEVEL"

	EnvDBDSN  = "STOREFRONT_DB_DSN"
	EnvDBHost = "STOREFRONT_DB_HOST"
	EnvDBUser = "STOREFRONT_DB_USER"
	EnvDBName = "STOREFRONT_DB_NAME"

	EnvRedisURL = "STOREFRONT_REDIS_URL"

	EnvJWTSecret  = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer  = "STOREFRONT_JWT_ISSUER"
	EnvJWTExpMins = "STOREFRONT_JWT_EXPIRATION_MINUTES"

	EnvUseSQLite   = "STOREFRONT_USE_SQLITE"
	EnvAutoMigrate = "STOREFRONT_AUTO_MIGRATE"

	EnvAPIBaseURL   = "STOREFRONT_API_BASE_URL"
	EnvStateBackend = "STOREFRONT_STATE_BACKEND"
	EnvStateDir     = "STOREFRONT_STATE_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
