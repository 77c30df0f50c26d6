package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Forms        FormsConfig
	Renderer     RendererConfig
	MailRelay    MailRelayConfig
	Retention    RetentionConfig
	Cron         CronConfig
	HTTP         HTTPConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"SCRAPBILL_APP_ENV" required:"true"`
	Port         string `envconfig:"SCRAPBILL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SCRAPBILL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SCRAPBILL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"SCRAPBILL_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"SCRAPBILL_DB_DSN"`
	Driver string `envconfig:"SCRAPBILL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SCRAPBILL_DB_HOST"`
	LegacyPort     int    `envconfig:"SCRAPBILL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SCRAPBILL_DB_USER"`
	LegacyPassword string `envconfig:"SCRAPBILL_DB_PASSWORD"`
	LegacyName     string `envconfig:"SCRAPBILL_DB_NAME"`
	LegacySSLMode  string `envconfig:"SCRAPBILL_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"SCRAPBILL_DB_SQLITE_PATH" default:"scrapbill.db"`

	MaxOpenConns    int           `envconfig:"SCRAPBILL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SCRAPBILL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SCRAPBILL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SCRAPBILL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SCRAPBILL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SCRAPBILL_REDIS_ADDR"`
	Password     string        `envconfig:"SCRAPBILL_REDIS_PASSWORD"`
	DB           int           `envconfig:"SCRAPBILL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SCRAPBILL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SCRAPBILL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SCRAPBILL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SCRAPBILL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SCRAPBILL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// FormsConfig tunes the live form session tier.
type FormsConfig struct {
	QuietPeriodMS int           `envconfig:"SCRAPBILL_FORMS_QUIET_MS" default:"200"`
	SessionTTL    time.Duration `envconfig:"SCRAPBILL_FORMS_SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SCRAPBILL_FORMS_SWEEP_INTERVAL" default:"1m"`
}

// QuietPeriod returns the debounce quiet period as a duration.
func (f FormsConfig) QuietPeriod() time.Duration {
	if f.QuietPeriodMS <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(f.QuietPeriodMS) * time.Millisecond
}

type RendererConfig struct {
	BaseURL string        `envconfig:"SCRAPBILL_RENDERER_URL"`
	Timeout time.Duration `envconfig:"SCRAPBILL_RENDERER_TIMEOUT" default:"30s"`
}

type MailRelayConfig struct {
	BaseURL     string        `envconfig:"SCRAPBILL_MAIL_RELAY_URL"`
	FromAddress string        `envconfig:"SCRAPBILL_MAIL_FROM_ADDRESS"`
	Timeout     time.Duration `envconfig:"SCRAPBILL_MAIL_RELAY_TIMEOUT" default:"30s"`
}

type RetentionConfig struct {
	StaleDraftMaxAge time.Duration `envconfig:"SCRAPBILL_RETENTION_STALE_DRAFT_MAX_AGE" default:"336h"`
}

// CronConfig tunes the scheduled worker.
type CronConfig struct {
	Interval time.Duration `envconfig:"SCRAPBILL_CRON_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"SCRAPBILL_CRON_LOCK_TTL" default:"25h"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string `envconfig:"SCRAPBILL_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SCRAPBILL_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SCRAPBILL_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, DriverSQLite) {
		db.DSN = db.SQLitePath
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
