package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all settings read from the environment
type Config struct {
	DB     DBConfig
	JWT    JWTConfig
	Server ServerConfig
	Redis  RedisConfig
	AMQP   AMQPConfig

	LogLevel          string `env:"LOG_LEVEL" env-default:"info"`
	InitialAdminEmail string `env:"INITIAL_ADMIN_EMAIL"`
}

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string `env:"DB_HOST" env-required:"true"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-required:"true"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" env-required:"true"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

// DSN builds a libpq-style connection string for pgx
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type JWTConfig struct {
	SecretKey       string `env:"JWT_SECRET_KEY" env-required:"true"`
	ExpirationHours int64  `env:"JWT_EXPIRATION_HOURS" env-default:"24"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" env-default:"3001"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	SubscribeRate   float64       `env:"SUBSCRIBE_RATE" env-default:"1"`
	SubscribeBurst  int           `env:"SUBSCRIBE_BURST" env-default:"5"`
}

// RedisConfig is optional; an empty Addr disables the catalog cache
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `env:"CATALOG_CACHE_TTL" env-default:"5m"`
}

// AMQPConfig is optional; an empty URL keeps SMS on the logging stub
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	SMSQueue string `env:"SMS_QUEUE" env-default:"sms.outbound"`
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	if cfg.JWT.ExpirationHours <= 0 {
		cfg.JWT.ExpirationHours = 24
	}
	return &cfg, nil
}
