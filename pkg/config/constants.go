package config

const (
	EnvPrefix = "phonedeck"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "PHONEDECK_APP_ENV"
	EnvPort       = "PHONEDECK_APP_PORT"
	EnvDBDSN      = "PHONEDECK_DB_DSN"
	EnvDBHost     = "PHONEDECK_DB_HOST"
	EnvDBUser     = "PHONEDECK_DB_USER"
	EnvDBName     = "PHONEDECK_DB_NAME"
	EnvRedisURL   = "PHONEDECK_REDIS_URL"
	EnvJWTSecret  = "PHONEDECK_JWT_SECRET"
	EnvJWTIssuer  = "PHONEDECK_JWT_ISSUER"
	EnvJWTExpMins = "PHONEDECK_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
