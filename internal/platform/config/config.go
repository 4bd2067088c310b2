package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

type Config struct {
	Addr               string        `env:"APP_ADDR" envDefault:":8080"`
	Environment        string        `env:"APP_ENV" envDefault:"development"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	SessionSecret      string        `env:"SESSION_SECRET"`
	SessionSealKey     string        `env:"SESSION_SEAL_KEY"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"false"`
	DataBackend        string        `env:"DATA_BACKEND" envDefault:"memory"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	APIBaseURL         string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	DataTimeout        time.Duration `env:"DATA_TIMEOUT" envDefault:"10s"`
	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	PageSize           int           `env:"PAGE_SIZE" envDefault:"10"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	RunSeed            bool          `env:"RUN_SEED" envDefault:"true"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
}

// DefaultEnvFiles are read, when present, before the environment is parsed.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnv loads the env files that exist and reports how many were found.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if info, err := os.Stat(f); err == nil && !info.IsDir() {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads env files then parses the process environment.
func Load() (Config, error) {
	if _, err := LoadEnv(DefaultEnvFiles); err != nil {
		return Config{}, err
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DataBackend = strings.ToLower(strings.TrimSpace(cfg.DataBackend))
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	switch c.DataBackend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when DATA_BACKEND is postgres")
		}
	case BackendREST:
		if strings.TrimSpace(c.APIBaseURL) == "" {
			return fmt.Errorf("API_BASE_URL is required when DATA_BACKEND is rest")
		}
	default:
		return fmt.Errorf("DATA_BACKEND must be one of memory, postgres, rest")
	}
	if c.IsProduction() {
		if strings.TrimSpace(c.SessionSecret) == "" {
			return fmt.Errorf("SESSION_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.SessionSealKey) == "" {
			return fmt.Errorf("SESSION_SEAL_KEY must be set in production")
		}
		if !c.CookieSecure {
			return fmt.Errorf("COOKIE_SECURE must be enabled in production")
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}
