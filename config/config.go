package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	// Event time zones must resolve on minimal container images.
	_ "time/tzdata"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Event    EventConfig
	Sale     SaleConfig
}

type ServerConfig struct {
	AppEnv         string   `envconfig:"APP_ENV" default:"dev"`
	HTTPPort       string   `envconfig:"HTTP_PORT" default:":8080"`
	GRPCPort       string   `envconfig:"GRPC_PORT" default:":8082"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type LoggerConfig struct {
	Level             string `envconfig:"LOGGER_LEVEL" default:"debug"`
	Encoding          string `envconfig:"LOGGER_ENCODING" default:"console"`
	DisableCaller     bool   `envconfig:"LOGGER_DISABLE_CALLER" default:"false"`
	DisableStacktrace bool   `envconfig:"LOGGER_DISABLE_STACKTRACE" default:"true"`
}

type PostgresConfig struct {
	Host            string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port            string `envconfig:"POSTGRES_PORT" default:"5432"`
	User            string `envconfig:"POSTGRES_USER" default:"booth"`
	Password        string `envconfig:"POSTGRES_PASSWORD" default:"booth"`
	DBName          string `envconfig:"POSTGRES_DB" default:"booth"`
	SSLMode         string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime int    `envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"300"`
	ConnMaxIdleTime int    `envconfig:"POSTGRES_CONN_MAX_IDLE_TIME" default:"60"`
}

type RedisConfig struct {
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"true"`
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CATALOG_TTL" default:"5m"`
}

type KafkaConfig struct {
	Enabled       bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	Brokers       []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	EventsTopic   string   `envconfig:"KAFKA_TOPIC_EVENTS" default:"booth.ledger"`
	RequestsTopic string   `envconfig:"KAFKA_TOPIC_SALE_REQUESTS" default:"booth.sale-requests"`
	GroupID       string   `envconfig:"KAFKA_GROUP_ID" default:"booth-service"`
}

// EventConfig describes the single trading day the projections run against.
type EventConfig struct {
	StartHour       float64       `envconfig:"EVENT_START" default:"8"`
	EndHour         float64       `envconfig:"EVENT_END" default:"18.5"`
	PartnerCount    int           `envconfig:"PARTNER_COUNT" default:"2"`
	GoalPerPartner  float64       `envconfig:"GOAL_PER_PARTNER" default:"4000"`
	TimeZone        string        `envconfig:"EVENT_TIMEZONE" default:"America/Sao_Paulo"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"12s"`
}

type SaleConfig struct {
	// CommitPolicy is "atomic" or "sequential".
	CommitPolicy string `envconfig:"SALE_COMMIT_POLICY" default:"atomic"`
}

func LoadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Event.EndHour <= c.Event.StartHour {
		return fmt.Errorf("EVENT_END (%v) must be after EVENT_START (%v)", c.Event.EndHour, c.Event.StartHour)
	}
	if c.Event.PartnerCount <= 0 {
		return fmt.Errorf("PARTNER_COUNT must be positive, got %d", c.Event.PartnerCount)
	}
	if c.Event.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	switch c.Sale.CommitPolicy {
	case "atomic", "sequential":
	default:
		return fmt.Errorf("SALE_COMMIT_POLICY must be atomic or sequential, got %q", c.Sale.CommitPolicy)
	}
	if _, err := c.Event.Location(); err != nil {
		return err
	}
	return nil
}

func (e EventConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(e.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load EVENT_TIMEZONE %q: %w", e.TimeZone, err)
	}
	return loc, nil
}
