package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mosaicdesk/bridge/internal/config"
	"github.com/mosaicdesk/bridge/internal/invoker"
	"github.com/mosaicdesk/bridge/internal/logging"
	"github.com/mosaicdesk/bridge/internal/monitoring"
	"github.com/mosaicdesk/bridge/internal/providers"
	"github.com/mosaicdesk/bridge/internal/providers/canvas"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	invoker *invoker.Invoker
	logger  *logging.Logger
	metrics *monitoring.Metrics
	config  *config.Config
}

// New creates a server instance with all providers registered.
// The canvas host is injected; pass canvas.NewMemoryHost() for dry runs.
func New(cfg *config.Config, host canvas.Host) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, err
	}

	metrics := monitoring.NewMetrics()

	registry, err := providers.BuildRegistry(cfg, host)
	if err != nil {
		return nil, err
	}

	inv := invoker.New(registry,
		invoker.WithLogger(logger.Named("invoker")),
		invoker.WithMetrics(metrics),
	)

	stats := registry.Stats()
	logger.Info("Registered capability providers",
		zap.Any("providers", stats["total_providers"]),
		zap.Any("tools", stats["total_tools"]),
	)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(corsMiddleware())

	s := &Server{
		router:  router,
		invoker: inv,
		logger:  logger,
		metrics: metrics,
		config:  cfg,
	}

	handlers := newHandlers(inv)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/capabilities", handlers.ListCapabilities)
	router.POST("/capabilities/discover", handlers.Discover)
	router.POST("/invoke", handlers.Invoke)

	router.GET("/metrics", handlers.Metrics)

	return s, nil
}

// Run starts the server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting bridge server", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down bridge server")
	if s.httpSrv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
