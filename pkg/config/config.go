package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Service   ServiceConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Catalog   CatalogConfig
	Retention RetentionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHONEDECK_APP_ENV" required:"true"`
	Port         string `envconfig:"PHONEDECK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PHONEDECK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHONEDECK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PHONEDECK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PHONEDECK_DB_DSN"`
	Driver string `envconfig:"PHONEDECK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PHONEDECK_DB_HOST"`
	LegacyPort     int    `envconfig:"PHONEDECK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PHONEDECK_DB_USER"`
	LegacyPassword string `envconfig:"PHONEDECK_DB_PASSWORD"`
	LegacyName     string `envconfig:"PHONEDECK_DB_NAME"`
	LegacySSLMode  string `envconfig:"PHONEDECK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PHONEDECK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHONEDECK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHONEDECK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHONEDECK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	UseSQLite   bool `envconfig:"PHONEDECK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PHONEDECK_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHONEDECK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PHONEDECK_REDIS_ADDR"`
	Password     string        `envconfig:"PHONEDECK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHONEDECK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHONEDECK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHONEDECK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHONEDECK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHONEDECK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHONEDECK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PHONEDECK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PHONEDECK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PHONEDECK_JWT_EXPIRATION_MINUTES" default:"60"`
}

type CatalogConfig struct {
	DefaultPageSize int `envconfig:"PHONEDECK_CATALOG_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int `envconfig:"PHONEDECK_CATALOG_MAX_PAGE_SIZE" default:"100"`
}

type RetentionConfig struct {
	SoftDeleteDays int           `envconfig:"PHONEDECK_RETENTION_SOFT_DELETE_DAYS" default:"365"`
	CronInterval   time.Duration `envconfig:"PHONEDECK_RETENTION_CRON_INTERVAL" default:"24h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.UseSQLite {
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
