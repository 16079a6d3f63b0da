package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Booking   BookingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine; the environment may be set directly
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Booking.OpenHour < 0 || c.Booking.OpenHour > 24 || c.Booking.CloseHour < 0 || c.Booking.CloseHour > 24 {
		return fmt.Errorf("opening hours must be within 0..24, got %d..%d", c.Booking.OpenHour, c.Booking.CloseHour)
	}
	if c.Booking.OpenHour > c.Booking.CloseHour {
		return fmt.Errorf("OPEN_HOUR %d is after CLOSE_HOUR %d", c.Booking.OpenHour, c.Booking.CloseHour)
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	if c.App.IsProd() && c.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	GinMode  string `envconfig:"GIN_MODE" default:"debug"`
	SeedData bool   `envconfig:"SEED_DATA" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"DB_DSN" default:"littlelemon.db"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

const defaultJWTSecret = "TestSecretKeyAUTH1945"

type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:"TestSecretKeyAUTH1945"`
	Issuer string        `envconfig:"JWT_ISSUER" default:"LittleLemon"`
	TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type BookingConfig struct {
	Timezone          string        `envconfig:"RESTAURANT_TIMEZONE" default:"Local"`
	OpenHour          int           `envconfig:"OPEN_HOUR" default:"11"`
	CloseHour         int           `envconfig:"CLOSE_HOUR" default:"23"`
	ReconcileInterval time.Duration `envconfig:"RECONCILE_INTERVAL" default:"1m"`
}

// Location resolves the restaurant's timezone. Booking dates and times are
// wall-clock values in this location.
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" || strings.EqualFold(b.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid RESTAURANT_TIMEZONE %q: %w", b.Timezone, err)
	}
	return loc, nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://127.0.0.1:5500,http://localhost:5500"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"50"`
	AuthPerMinute     int     `envconfig:"RATE_LIMIT_AUTH_PER_MINUTE" default:"5"`
}
