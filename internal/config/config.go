package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var defaultOrigins = []string{
	"http://localhost:5173",
	"https://next-hire-nine.vercel.app",
}

type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	StoreDriver    string
	MongoURI       string
	DBName         string
	PostgresDSN    string
	JWTSecret      string
	AllowedOrigins []string
	MaxUploadBytes int64
	StoreTimeout   time.Duration
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("APP_ENV", "development"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		DBName:      getEnv("DB_NAME", "NextHire"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.AllowedOrigins = defaultOrigins
	if raw := getEnv("ALLOWED_ORIGINS", ""); raw != "" {
		cfg.AllowedOrigins = splitList(raw)
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "5242880"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD_BYTES")
	}
	cfg.MaxUploadBytes = maxUpload

	timeout, err := time.ParseDuration(getEnv("STORE_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return Config{}, fmt.Errorf("invalid STORE_TIMEOUT")
	}
	cfg.StoreTimeout = timeout

	cfg.MongoURI = getEnv("MONGODB_URI", "")
	if cfg.MongoURI == "" {
		user, pass := getEnv("DB_USER", ""), getEnv("DB_PASS", "")
		if user != "" && pass != "" {
			cluster := getEnv("DB_CLUSTER", "cluster0.skka1tn.mongodb.net")
			cfg.MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=Cluster0",
				url.QueryEscape(user), url.QueryEscape(pass), cluster)
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI (or DB_USER and DB_PASS) must be set for the mongo driver"))
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN must be set for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("ALLOWED_ORIGINS must list at least one origin"))
	}
	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
