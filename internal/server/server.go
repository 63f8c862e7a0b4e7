// Package server is the HTTP surface: health, Prometheus metrics and the
// news and presentation JSON endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/deusflow/telconews/internal/logger"
	"github.com/deusflow/telconews/internal/metrics"
	"github.com/deusflow/telconews/internal/news"
)

// Aggregator runs one aggregation pass.
type Aggregator interface {
	Run(ctx context.Context, r news.DateRange) (*news.AggregateResult, error)
}

// QuotaReporter exposes AI quota usage on /api/status.
type QuotaReporter interface {
	Stats() map[string]interface{}
}

type Option func(*Server)

// WithRateLimit limits /api/news to rps requests per second per client. A
// non-positive rps disables the limit.
func WithRateLimit(rps float64) Option {
	return func(s *Server) {
		s.rateLimit = rps
	}
}

func WithQuota(q QuotaReporter) Option {
	return func(s *Server) {
		s.quota = q
	}
}

// WithStatus replaces metrics.Global as the health source.
func WithStatus(st *metrics.Status) Option {
	return func(s *Server) {
		s.status = st
	}
}

type Server struct {
	echo      *echo.Echo
	agg       Aggregator
	quota     QuotaReporter
	status    *metrics.Status
	rateLimit float64
	log       *slog.Logger
}

func New(agg Aggregator, opts ...Option) *Server {
	s := &Server{
		agg:    agg,
		status: metrics.Global,
		log:    logger.With("server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID)
			return nil
		},
	}))

	e.GET("/health", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/api/status", s.handleStatus)

	newsMiddleware := []echo.MiddlewareFunc{}
	if s.rateLimit > 0 {
		newsMiddleware = append(newsMiddleware,
			middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.rateLimit))))
	}
	e.POST("/api/news", s.handleNews, newsMiddleware...)
	e.POST("/api/presentation", s.handlePresentation, middleware.BodyLimit("4M"))

	s.echo = e
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.Info("starting HTTP server", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
