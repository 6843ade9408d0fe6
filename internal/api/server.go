// Package api exposes the scoring engine over HTTP. The API is the
// rendering/transport collaborator of the engine: it accepts raw intake
// fields, returns the structured report, and keeps a small in-process
// cache of recent reports for retrieval. Nothing is persisted.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/metabo-score-server/internal/domain"
	"github.com/metabo-score-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	logger      *logrus.Logger
	config      *domain.Config
	engine      *service.ScoringEngine
	registry    *service.CutoffRegistry
	reportCache *lru.Cache[string, *domain.Report]
	router      *gin.Engine
	server      *http.Server
}

// NewServer creates a new HTTP server around a scoring engine. The report
// cache is ephemeral and process-local; it only backs the retrieval
// endpoint for recently computed reports.
func NewServer(logger *logrus.Logger, cfg *domain.Config, engine *service.ScoringEngine, registry *service.CutoffRegistry) (*Server, error) {
	cache, err := lru.New[string, *domain.Report](cfg.API.ReportCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(securityHeaders())
	router.Use(requestIDMiddleware())

	s := &Server{
		logger:      logger,
		config:      cfg,
		engine:      engine,
		registry:    registry,
		reportCache: cache,
		router:      router,
	}

	s.setupRoutes()

	return s, nil
}

// Start starts the HTTP server and blocks until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.config.Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	limiter := rate.NewLimiter(rate.Limit(s.config.API.RateLimitPerSecond), s.config.API.RateLimitBurst)

	v1 := s.router.Group("/api/v1")
	v1.Use(rateLimitMiddleware(limiter))
	{
		v1.POST("/score", s.handleScore)
		v1.GET("/report/:id", s.handleGetReport)
		v1.GET("/indices", s.handleIndexCatalog)
	}
}
