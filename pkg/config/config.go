package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MOVEASSIST"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MOVEASSIST_DB_DSN"
	EnvDBHost = "MOVEASSIST_DB_HOST"
	EnvDBUser = "MOVEASSIST_DB_USER"
	EnvDBName = "MOVEASSIST_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
	FeatureFlags  FeatureFlagsConfig
	Pricing       PricingConfig
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
	Env          string `envconfig:"MOVEASSIST_APP_ENV" required:"true"`
	Port         string `envconfig:"MOVEASSIST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MOVEASSIST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MOVEASSIST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MOVEASSIST_DB_DSN"`
	Driver string `envconfig:"MOVEASSIST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MOVEASSIST_DB_HOST"`
	LegacyPort     int    `envconfig:"MOVEASSIST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MOVEASSIST_DB_USER"`
	LegacyPassword string `envconfig:"MOVEASSIST_DB_PASSWORD"`
	LegacyName     string `envconfig:"MOVEASSIST_DB_NAME"`
	LegacySSLMode  string `envconfig:"MOVEASSIST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MOVEASSIST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MOVEASSIST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MOVEASSIST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MOVEASSIST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MOVEASSIST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MOVEASSIST_REDIS_ADDR"`
	Password     string        `envconfig:"MOVEASSIST_REDIS_PASSWORD"`
	DB           int           `envconfig:"MOVEASSIST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MOVEASSIST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MOVEASSIST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MOVEASSIST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MOVEASSIST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MOVEASSIST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MOVEASSIST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MOVEASSIST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MOVEASSIST_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"MOVEASSIST_BCRYPT_COST" default:"12"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MOVEASSIST_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MOVEASSIST_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MOVEASSIST_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MOVEASSIST_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MOVEASSIST_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MOVEASSIST_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"MOVEASSIST_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MOVEASSIST_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MOVEASSIST_AUTO_MIGRATE" default:"false"`
}

type PricingConfig struct {
	TokenPercent int `envconfig:"MOVEASSIST_PRICING_TOKEN_PERCENT" default:"10"`
	GSTPercent   int `envconfig:"MOVEASSIST_PRICING_GST_PERCENT" default:"18"`
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
