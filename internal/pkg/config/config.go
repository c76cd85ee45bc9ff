package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timeouts, limits, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Resolver ResolverConfig
	Coupon   CouponConfig
	Cache    CacheConfig
	Audit    AuditConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string        `envconfig:"DB_HOST" default:"localhost"`
	Port          string        `envconfig:"DB_PORT" default:"5432"`
	User          string        `envconfig:"DB_USER" required:"true"`
	Password      string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	SSLMode       string        `envconfig:"DB_SSL_MODE" default:"disable"`
	QueryTimeout  time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"3s"`
	RunMigrations bool          `envconfig:"DB_RUN_MIGRATIONS" default:"false"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// ResolverConfig controls conflict resolution across matched campaigns.
type ResolverConfig struct {
	// FloorCents is the minimum order subtotal after all discounts.
	FloorCents int64 `envconfig:"RESOLVER_FLOOR_CENTS" default:"0"`
	// GlobalCapCents caps the total discount per order. 0 means unlimited.
	GlobalCapCents int64 `envconfig:"RESOLVER_GLOBAL_CAP_CENTS" default:"0"`
	// Truncation selects how the global cap is applied when exceeded:
	// "lowest_priority_first" or "proportional".
	Truncation string `envconfig:"RESOLVER_TRUNCATION" default:"lowest_priority_first"`
}

type CouponConfig struct {
	// ReservationTTL matches the checkout session length.
	ReservationTTL time.Duration `envconfig:"COUPON_RESERVATION_TTL" default:"15m"`
	// CodeTTL is the validity window of issued codes.
	CodeTTL time.Duration `envconfig:"COUPON_CODE_TTL" default:"720h"`
	// LowStockThreshold triggers a best-effort event when the available
	// count of a pool drops below it.
	LowStockThreshold int `envconfig:"COUPON_LOW_STOCK_THRESHOLD" default:"10"`
}

type CacheConfig struct {
	CampaignTTL time.Duration `envconfig:"CACHE_CAMPAIGN_TTL" default:"300s"`
}

type AuditConfig struct {
	Retention     time.Duration `envconfig:"AUDIT_RETENTION" default:"2160h"`
	PruneInterval time.Duration `envconfig:"AUDIT_PRUNE_INTERVAL" default:"1h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:         "localhost",
			Port:         "15433",
			User:         "test",
			Password:     "test",
			DBName:       "test_db",
			SSLMode:      "disable",
			QueryTimeout: 3 * time.Second,
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Resolver: ResolverConfig{
			Truncation: "lowest_priority_first",
		},
		Coupon: CouponConfig{
			ReservationTTL:    15 * time.Minute,
			CodeTTL:           720 * time.Hour,
			LowStockThreshold: 10,
		},
		Cache: CacheConfig{
			CampaignTTL: 300 * time.Second,
		},
		Audit: AuditConfig{
			Retention:     2160 * time.Hour,
			PruneInterval: time.Hour,
		},
	}
}
