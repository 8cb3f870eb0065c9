package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, populated from the environment.
// A .env file is loaded first when present.
type Config struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	GinMode        string   `envconfig:"GIN_MODE" default:"debug"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
	TemplateGlob   string   `envconfig:"TEMPLATE_GLOB" default:"web/templates/*.html"`

	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
}

// DatabaseConfig is the Postgres connection configuration.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"menu_user"`
	Password string `envconfig:"DB_PASSWORD" default:"menu_password"`
	Name     string `envconfig:"DB_NAME" default:"menu_catalog_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig configures the optional listing cache. An empty Addr disables
// caching entirely.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"30s"`
}

// AdminConfig gates the administrative surface. The service has no user
// store; a single operator credential is exchanged for a bearer token.
type AdminConfig struct {
	JWTSecret    string        `envconfig:"ADMIN_JWT_SECRET" required:"true"`
	PasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH" required:"true"` // bcrypt hash
	TokenTTL     time.Duration `envconfig:"ADMIN_TOKEN_TTL" default:"12h"`
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment config: %w", err)
	}
	return &cfg, nil
}
