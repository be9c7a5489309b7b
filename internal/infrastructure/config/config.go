package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the person-finder service
type Config struct {
	// HTTP Server - using PERSON_FINDER_ prefix to avoid collisions
	HTTPPort        string        `env:"PERSON_FINDER_HTTP_PORT" envDefault:"8095"`
	LogLevel        string        `env:"PERSON_FINDER_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"PERSON_FINDER_LOG_FORMAT" envDefault:"json"` // json or console
	Environment     string        `env:"PERSON_FINDER_ENVIRONMENT" envDefault:"development"`
	ShutdownTimeout time.Duration `env:"PERSON_FINDER_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Upstream aggregation service
	UpstreamURL    string        `env:"PERSON_FINDER_UPSTREAM_URL"`
	UseRealBackend bool          `env:"PERSON_FINDER_USE_REAL_BACKEND" envDefault:"false"`
	Timeout        time.Duration `env:"PERSON_FINDER_TIMEOUT" envDefault:"60s"`
	UserAgent      string        `env:"PERSON_FINDER_USER_AGENT" envDefault:"Person-Finder/1.0"`

	// Fixture backend used when the real backend is off
	FixtureDelay time.Duration `env:"PERSON_FINDER_FIXTURE_DELAY" envDefault:"1s"`
	FixtureFile  string        `env:"PERSON_FINDER_FIXTURE_FILE"`

	// HTTP Client Performance
	MaxIdleConns    int           `env:"PERSON_FINDER_MAX_IDLE_CONNS" envDefault:"100"`
	MaxConnsPerHost int           `env:"PERSON_FINDER_MAX_CONNS_PER_HOST" envDefault:"50"`
	IdleConnTimeout time.Duration `env:"PERSON_FINDER_IDLE_CONN_TIMEOUT" envDefault:"90s"`

	// Presentation
	ErrorMessages string `env:"PERSON_FINDER_ERROR_MESSAGES" envDefault:"collapsed"` // collapsed or detailed

	// Observability
	PIILevel       string  `env:"PERSON_FINDER_PII_LEVEL" envDefault:"hashed"` // none, hashed or full
	TracingEnabled bool    `env:"PERSON_FINDER_TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	SamplingRate   float64 `env:"PERSON_FINDER_TRACE_SAMPLING_RATE" envDefault:"1.0"`
	ServiceVersion string  `env:"PERSON_FINDER_VERSION" envDefault:"dev"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(os.Getenv("PERSON_FINDER_LOG_LEVEL")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_LEVEL")); global != "" {
			cfg.LogLevel = global
		}
	}
	if strings.TrimSpace(os.Getenv("PERSON_FINDER_LOG_FORMAT")) == "" {
		if global := strings.TrimSpace(os.Getenv("LOG_FORMAT")); global != "" {
			cfg.LogFormat = global
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	if c.UseRealBackend && strings.TrimSpace(c.UpstreamURL) == "" {
		return fmt.Errorf("PERSON_FINDER_UPSTREAM_URL is required when PERSON_FINDER_USE_REAL_BACKEND is true")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("PERSON_FINDER_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.FixtureDelay < 0 {
		return fmt.Errorf("PERSON_FINDER_FIXTURE_DELAY must not be negative, got %s", c.FixtureDelay)
	}
	switch strings.ToLower(strings.TrimSpace(c.ErrorMessages)) {
	case "", "collapsed", "detailed":
	default:
		return fmt.Errorf("PERSON_FINDER_ERROR_MESSAGES must be collapsed or detailed, got %q", c.ErrorMessages)
	}
	switch strings.ToLower(strings.TrimSpace(c.PIILevel)) {
	case "none", "hashed", "full":
	default:
		return fmt.Errorf("PERSON_FINDER_PII_LEVEL must be none, hashed or full, got %q", c.PIILevel)
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return fmt.Errorf("PERSON_FINDER_TRACE_SAMPLING_RATE must be within [0,1], got %v", c.SamplingRate)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// LoadEnvFiles overlays .env files found in the working directory or its parent.
func LoadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
