package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvLocal = "local"
	EnvDev   = "development"
	EnvProd  = "production"

	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"

	PolicyOpen   = "open"
	PolicyClosed = "closed"
)

type Config struct {
	Env  string `envconfig:"ENV" default:"local"`
	Port string `envconfig:"PORT" default:"3000"`

	// credentials
	ServiceAccountKey  string `envconfig:"SERVICE_ACCOUNT_KEY"`
	ServiceAccountFile string `envconfig:"SERVICE_ACCOUNT_FILE" default:"./google-service-account.json"`

	// calendar
	CalendarID string `envconfig:"CALENDAR_ID" required:"true"`
	TimeZone   string `envconfig:"TIMEZONE" default:"Europe/Paris"`

	// booking rules
	SlotDuration        time.Duration `envconfig:"SLOT_DURATION" default:"30m"`
	RetentionDays       int           `envconfig:"RETENTION_DAYS" default:"7"`
	UnknownStatusPolicy string        `envconfig:"UNKNOWN_STATUS_POLICY" default:"open"`

	// storage
	StoreDriver        string `envconfig:"STORE_DRIVER" default:"firestore"`
	FirestoreProjectID string `envconfig:"FIRESTORE_PROJECT_ID"`
	DatabaseURL        string `envconfig:"DATABASE_URL"`
	MigrationsPath     string `envconfig:"MIGRATIONS_PATH" default:"db/migrations/001_init.sql"`

	// http
	BookRateRPS        float64  `envconfig:"BOOK_RATE_RPS" default:"1"`
	BookRateBurst      int      `envconfig:"BOOK_RATE_BURST" default:"5"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Only enable it behind a proxy that overwrites them.
	TrustProxyHeaders bool `envconfig:"TRUST_PROXY_HEADERS" default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Location resolves TimeZone. validate already checked it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) validate() error {
	if c.CalendarID == "" {
		return fmt.Errorf("CALENDAR_ID is required")
	}

	switch c.StoreDriver {
	case DriverFirestore, DriverMemory:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.UnknownStatusPolicy {
	case PolicyOpen, PolicyClosed:
	default:
		return fmt.Errorf("unknown UNKNOWN_STATUS_POLICY %q", c.UnknownStatusPolicy)
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	if c.SlotDuration <= 0 {
		return fmt.Errorf("SLOT_DURATION must be positive")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("RETENTION_DAYS must not be negative")
	}
	if c.BookRateRPS <= 0 {
		return fmt.Errorf("BOOK_RATE_RPS must be positive")
	}
	if c.BookRateBurst <= 0 {
		return fmt.Errorf("BOOK_RATE_BURST must be positive")
	}
	return nil
}
