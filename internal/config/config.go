package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DBDriver string
	DBDSN    string

	SessionSecret string
	SessionTTL    time.Duration
	SecureCookie  bool

	UploadDir      string
	MaxUploadBytes int64

	Currency   string
	CORSOrigin string

	AdminName     string
	AdminEmail    string
	AdminPassword string
	SeedCatalog   bool
}

// Development reports whether APP_ENV=development.
func (c Config) Development() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Env:           get("APP_ENV", "production"),
		HTTPAddr:      get("HTTP_ADDR", ":8080"),
		DBDriver:      strings.ToLower(get("DB_DRIVER", DriverMySQL)),
		DBDSN:         get("DB_DSN", ""),
		SessionSecret: getenv("SESSION_SECRET"),
		UploadDir:     get("UPLOAD_DIR", "static/images"),
		Currency:      strings.ToUpper(get("CURRENCY", "BRL")),
		CORSOrigin:    get("CORS_ORIGIN", "http://localhost:5173"),
		AdminName:     get("ADMIN_NAME", "Administrador"),
		AdminEmail:    get("ADMIN_EMAIL", "admin@loja.com"),
		AdminPassword: getenv("ADMIN_PASSWORD"),
	}

	var errs []error

	ttl, err := time.ParseDuration(get("SESSION_TTL", "72h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL: invalid duration %q", getenv("SESSION_TTL")))
	}
	cfg.SessionTTL = ttl

	maxBytes, err := strconv.ParseInt(get("MAX_UPLOAD_BYTES", strconv.Itoa(16<<20)), 10, 64)
	if err != nil || maxBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES: invalid size %q", getenv("MAX_UPLOAD_BYTES")))
	}
	cfg.MaxUploadBytes = maxBytes

	if cfg.SeedCatalog, err = strconv.ParseBool(get("SEED_CATALOG", "true")); err != nil {
		errs = append(errs, fmt.Errorf("SEED_CATALOG: %w", err))
	}

	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres:
		if cfg.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the "+cfg.DBDriver+" driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unknown driver %q", cfg.DBDriver))
	}

	if cfg.SessionSecret == "" {
		if !cfg.Development() {
			errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
		}
		cfg.SessionSecret = "dev-only-session-secret"
	}
	cfg.SecureCookie = !cfg.Development()

	if cfg.Development() && cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}
