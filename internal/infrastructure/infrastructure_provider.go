package infrastructure

import (
	"context"
	"strings"

	"github.com/google/wire"
	"github.com/rs/zerolog/log"

	"github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/internal/infrastructure/config"
	"github.com/personfinder/person-finder/internal/infrastructure/upstream"
	"github.com/personfinder/person-finder/pkg/observability"
	"github.com/personfinder/person-finder/pkg/telemetry"
)

const serviceName = "person-finder"

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,
	ProvideServiceConfig,
	ProvideOrchestratorConfig,

	// Observability
	ProvideObservability,
	ProvideSanitizer,

	// Upstream client
	ProvideSearchClient,
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideServiceConfig maps the transport timeout onto the search service
func ProvideServiceConfig(cfg *config.Config) search.ServiceConfig {
	return search.ServiceConfig{Timeout: cfg.Timeout}
}

// ProvideOrchestratorConfig resolves the user-facing message mode
func ProvideOrchestratorConfig(cfg *config.Config) (search.OrchestratorConfig, error) {
	mode, err := search.ParseMessageMode(cfg.ErrorMessages)
	if err != nil {
		return search.OrchestratorConfig{}, err
	}
	return search.OrchestratorConfig{MessageMode: mode}, nil
}

// ProvideObservability initialises tracing; the cleanup flushes pending spans
func ProvideObservability(ctx context.Context, cfg *config.Config) (*observability.Provider, func(), error) {
	obsCfg := observability.DefaultConfig(serviceName)
	obsCfg.ServiceVersion = cfg.ServiceVersion
	obsCfg.Environment = cfg.Environment
	obsCfg.TracingEnabled = cfg.TracingEnabled
	obsCfg.OTLPEndpoint = cfg.OTLPEndpoint
	obsCfg.SamplingRate = cfg.SamplingRate
	obsCfg.PIILevel = strings.ToLower(strings.TrimSpace(cfg.PIILevel))

	provider, err := observability.Init(ctx, obsCfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}
	return provider, cleanup, nil
}

// ProvideSanitizer exposes the PII sanitizer built with the observability provider
func ProvideSanitizer(provider *observability.Provider) *telemetry.Sanitizer {
	return provider.Sanitizer
}

// ProvideSearchClient selects the real webhook client or the offline fixture
func ProvideSearchClient(cfg *config.Config, sanitizer *telemetry.Sanitizer) (search.SearchClient, error) {
	if cfg.UseRealBackend {
		log.Info().
			Str("backend", upstream.BackendWebhook).
			Dur("timeout", cfg.Timeout).
			Msg("using upstream webhook backend")
		return upstream.NewClient(upstream.ClientConfig{
			URL:             cfg.UpstreamURL,
			UserAgent:       cfg.UserAgent,
			MaxConnsPerHost: cfg.MaxConnsPerHost,
			MaxIdleConns:    cfg.MaxIdleConns,
			IdleConnTimeout: cfg.IdleConnTimeout,
		}, sanitizer), nil
	}

	var records []upstream.FixtureRecord
	if path := strings.TrimSpace(cfg.FixtureFile); path != "" {
		loaded, err := upstream.LoadFixtureFile(path)
		if err != nil {
			return nil, err
		}
		records = loaded
	}

	log.Info().
		Str("backend", upstream.BackendFixture).
		Dur("delay", cfg.FixtureDelay).
		Int("fixture_records", len(records)).
		Msg("using fixture backend")
	return upstream.NewFixtureClient(cfg.FixtureDelay, records, sanitizer), nil
}
