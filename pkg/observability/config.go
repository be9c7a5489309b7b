package observability

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Config wraps tracing settings resolved from the service config
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string // development, staging, production
	TracingEnabled bool
	OTLPEndpoint   string // host:port of the OTLP/HTTP collector
	OTLPHeaders    map[string]string
	SamplingRate   float64 // 0.0 - 1.0
	PIILevel       string  // none|hashed|full

	// Advanced settings
	TraceBatchTimeout time.Duration
	ResourceAttrs     []attribute.KeyValue
}

// DefaultConfig returns sensible defaults
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:       serviceName,
		ServiceVersion:    "unknown",
		Environment:       "development",
		TracingEnabled:    false,
		OTLPEndpoint:      "localhost:4318",
		SamplingRate:      1.0,
		PIILevel:          "hashed",
		TraceBatchTimeout: 5 * time.Second,
	}
}
