// Package http exposes the report API over gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atlatec/pozo-report-api/config"
	"github.com/atlatec/pozo-report-api/db"
)

// Server bundles router and dependencies for the report API.
type Server struct {
	cfg      config.Config
	registry *db.Registry
	engine   *gin.Engine
}

// New constructs a server with routes and middleware.
func New(cfg config.Config, registry *db.Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())
	engine.Use(corsMiddleware())

	server := &Server{cfg: cfg, registry: registry, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Reporteador de Pozos API")
	})
	s.engine.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "API is working!",
			"timestamp": time.Now().Format("2006-01-02 15:04:05"),
		})
	})

	s.engine.GET("/api/conexiones", s.handleListConnections)
	s.engine.GET("/api/conexiones/probar", s.handleProbeConnection)

	s.engine.GET("/api/pozos", s.handleWellsWithHistory)
	s.engine.GET("/api/pozos/todos", s.handleAllWells)
	s.engine.GET("/api/pozos/reporte", s.handleDailyReport)
	s.engine.GET("/api/pozos/reporte/mensual", s.handleMonthlyReport)
	s.engine.GET("/api/pozos/tags", s.handleWellTags)
}

// corsMiddleware applies the headers the legacy frontends depend on.
// OPTIONS requests short-circuit with 200 and no body.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, X-Token-Auth, Authorization, Accept, Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
