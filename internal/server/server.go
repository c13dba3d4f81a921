package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	httperr "github.com/tally-lab/project-tally/internal/core/errors"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

type Server struct {
	Engine *gin.Engine
	Addr   string
	health HealthChecker
	cors   CORSOptions
}

// HealthChecker is an interface for components that can report their health status.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// DetailReporter is optionally implemented by a HealthChecker to add fields
// to the health response.
type DetailReporter interface {
	HealthDetails() map[string]interface{}
}

// CORSOptions is the subset of go-chi/cors settings exposed in configuration.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowCredentials bool
	MaxAge           int
}

func New(addr, mode string, health HealthChecker, corsOpts CORSOptions) *Server {
	// Set Gin mode based on configuration
	switch mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(requestID(), gin.Logger(), gin.CustomRecovery(recoverJSON))
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httperr.Fail(httperr.HttpNotFoundError, "Route not found"))
	})

	s := &Server{
		Engine: r,
		Addr:   addr,
		health: health,
		cors:   corsOpts,
	}

	// Health check endpoint reporting dataset availability
	r.GET("/health", s.healthHandler)

	return s
}

// requestID propagates an incoming X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the correlation id assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func recoverJSON(c *gin.Context, recovered interface{}) {
	slog.Error("Recovered from panic",
		"panic", recovered,
		"path", c.Request.URL.Path,
		"request_id", RequestID(c),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError,
		httperr.Fail(httperr.HttpInternalError, "Internal server error"))
}

func (s *Server) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			slog.Error("Health check failed: dataset unavailable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "dataset unavailable",
			})
			return
		}
	}

	body := gin.H{"status": "healthy"}
	if reporter, ok := s.health.(DetailReporter); ok {
		for k, v := range reporter.HealthDetails() {
			body[k] = v
		}
	}
	c.JSON(http.StatusOK, body)
}

// Handler returns the engine wrapped in the CORS layer.
func (s *Server) Handler() http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   s.cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: s.cors.AllowCredentials,
		MaxAge:           s.cors.MaxAge,
	})(s.Engine)
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting HTTP Server...", "address", s.Addr)

	go func() {
		<-ctx.Done()
		slog.Info("Stopping HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP Server forced to shutdown", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
