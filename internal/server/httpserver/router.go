package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yndnr/tokmint/internal/core/service"
	"github.com/yndnr/tokmint/internal/server/config"
	"github.com/yndnr/tokmint/internal/server/httpserver/handler"
	"github.com/yndnr/tokmint/internal/telemetry/logger"
	"github.com/yndnr/tokmint/internal/telemetry/metric"
)

// Health endpoint paths. They never run the Tokens middleware.
const (
	HealthPath = "/healthz"
	ReadyPath  = "/readyz"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Registry  *service.Registry
	Assembler *service.Assembler
	Logger    logger.Logger
	Metrics   *metric.Registry

	// MetricsPath serves Prometheus metrics when non-empty.
	MetricsPath string

	RateLimit config.RateLimitConfig

	// TrustedProxies are peers whose forwarding headers name the client.
	TrustedProxies []*net.IPNet

	// Now is the clock handed to the assembler. Defaults to time.Now.
	Now func() time.Time
}

// NewRouter creates the HTTP handler for tokmint-server.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	assembler := cfg.Assembler
	if assembler == nil {
		assembler = service.NewAssembler(service.WithLogger(log), service.WithMetrics(cfg.Metrics))
	}
	registry := cfg.Registry
	if registry == nil {
		registry = service.NewRegistry()
	}
	h := handler.New(registry, log)
	clientIP := NewClientIP(cfg.TrustedProxies)

	r := chi.NewRouter()
	r.Use(RequestID(), Recover(log), AccessLog(log, cfg.Metrics, clientIP))

	r.Get(HealthPath, h.Health)
	r.Get(ReadyPath, h.Ready)
	if cfg.MetricsPath != "" {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if cfg.RateLimit.Enabled {
			r.Use(RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
				WithClientIP(clientIP),
				WithIdleTimeout(cfg.RateLimit.IdleTimeout)))
		}
		r.Use(Tokens(registry, assembler, log, cfg.Now))
		r.Handle("/*", http.HandlerFunc(h.Tokens))
	})

	return r
}
