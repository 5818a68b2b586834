package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Operator      OperatorConfig
	AuthRateLimit AuthRateLimitConfig
	Cache         CacheConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if cfg.Operator.Password == "" && cfg.Operator.PasswordHash == "" {
		return nil, fmt.Errorf("operator password or password hash is required")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MKSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"MKSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MKSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MKSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind        string   `envconfig:"MKSHOP_SERVICE_KIND" default:"api"`
	CORSOrigins []string `envconfig:"MKSHOP_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	Timezone    string   `envconfig:"MKSHOP_TIMEZONE" default:"UTC"`
}

// Location resolves the operator's reporting timezone. An unknown name falls
// back to UTC rather than failing boot.
func (s ServiceConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type DBConfig struct {
	DSN    string `envconfig:"MKSHOP_DB_DSN"`
	Driver string `envconfig:"MKSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MKSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"MKSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MKSHOP_DB_USER"`
	LegacyPassword string `envconfig:"MKSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"MKSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"MKSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MKSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MKSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MKSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MKSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MKSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MKSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"MKSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"MKSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MKSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MKSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MKSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MKSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MKSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"MKSHOP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"MKSHOP_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"MKSHOP_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"MKSHOP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// OperatorConfig holds the single dashboard operator account. PasswordHash
// takes precedence over Password when both are set; Password exists for local
// development only.
type OperatorConfig struct {
	Email        string `envconfig:"MKSHOP_OPERATOR_EMAIL" required:"true"`
	Password     string `envconfig:"MKSHOP_OPERATOR_PASSWORD"`
	PasswordHash string `envconfig:"MKSHOP_OPERATOR_PASSWORD_HASH"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"MKSHOP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"MKSHOP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"MKSHOP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// CacheConfig bounds the Redis read-through cache for derived views.
type CacheConfig struct {
	ViewTTL time.Duration `envconfig:"MKSHOP_CACHE_VIEW_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MKSHOP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MKSHOP_AUTO_MIGRATE" default:"false"`
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
