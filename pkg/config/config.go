package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "HOPTIMISTEN_DB_DSN"
	EnvDBHost = "HOPTIMISTEN_DB_HOST"
	EnvDBUser = "HOPTIMISTEN_DB_USER"
	EnvDBName = "HOPTIMISTEN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Push          PushConfig
	Reconcile     ReconcileConfig
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
	Env          string `envconfig:"HOPTIMISTEN_APP_ENV" required:"true"`
	Port         string `envconfig:"HOPTIMISTEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOPTIMISTEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOPTIMISTEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOPTIMISTEN_DB_DSN"`
	Driver string `envconfig:"HOPTIMISTEN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOPTIMISTEN_DB_HOST"`
	LegacyPort     int    `envconfig:"HOPTIMISTEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOPTIMISTEN_DB_USER"`
	LegacyPassword string `envconfig:"HOPTIMISTEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOPTIMISTEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOPTIMISTEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOPTIMISTEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOPTIMISTEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOPTIMISTEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOPTIMISTEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOPTIMISTEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HOPTIMISTEN_REDIS_ADDR"`
	Password     string        `envconfig:"HOPTIMISTEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOPTIMISTEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOPTIMISTEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOPTIMISTEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOPTIMISTEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOPTIMISTEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOPTIMISTEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HOPTIMISTEN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HOPTIMISTEN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HOPTIMISTEN_JWT_EXPIRATION_MINUTES" default:"720"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HOPTIMISTEN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HOPTIMISTEN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HOPTIMISTEN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HOPTIMISTEN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HOPTIMISTEN_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HOPTIMISTEN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"HOPTIMISTEN_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HOPTIMISTEN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"HOPTIMISTEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"HOPTIMISTEN_AUTO_MIGRATE" default:"false"`
}

type PushConfig struct {
	VAPIDPublicKey  string `envconfig:"HOPTIMISTEN_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `envconfig:"HOPTIMISTEN_VAPID_PRIVATE_KEY"`
	Subscriber      string `envconfig:"HOPTIMISTEN_VAPID_SUBSCRIBER" default:"mailto:vorstand@hoptimisten.de"`
	TTLSeconds      int    `envconfig:"HOPTIMISTEN_PUSH_TTL_SECONDS" default:"3600"`
}

// Enabled reports whether web push credentials are configured.
func (p PushConfig) Enabled() bool {
	return p.VAPIDPublicKey != "" && p.VAPIDPrivateKey != ""
}

type ReconcileConfig struct {
	LockTTL time.Duration `envconfig:"HOPTIMISTEN_RECONCILE_LOCK_TTL" default:"30s"`
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
