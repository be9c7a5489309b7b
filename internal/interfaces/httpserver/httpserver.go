package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/personfinder/person-finder/internal/infrastructure/config"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver/middlewares"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver/routes/mcp"
	v1 "github.com/personfinder/person-finder/internal/interfaces/httpserver/routes/v1"
)

const serviceName = "person-finder"

type HTTPServer struct {
	router      *gin.Engine
	config      *config.Config
	searchRoute *v1.SearchRoute
	mcpRoute    *mcp.MCPRoute
}

func NewHTTPServer(
	cfg *config.Config,
	searchRoute *v1.SearchRoute,
	mcpRoute *mcp.MCPRoute,
) *HTTPServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.Tracing(serviceName))
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	s := &HTTPServer{
		router:      router,
		config:      cfg,
		searchRoute: searchRoute,
		mcpRoute:    mcpRoute,
	}
	s.setupRoutes()
	return s
}

func (s *HTTPServer) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})

	s.router.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1Group := s.router.Group("/v1")
	s.searchRoute.RegisterRouter(v1Group)
	s.mcpRoute.RegisterRouter(v1Group)
}

// Handler exposes the router for in-process tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP listener and shuts it down gracefully when ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.config.Addr()).Msg("HTTP server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
