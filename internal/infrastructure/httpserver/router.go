package httpserver

import (
	"net/http"

	"ecofin-advisor/internal/infrastructure/metrics"
	"ecofin-advisor/internal/version"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

const (
	EndPointHealth   = "/health"
	EndPointGenerate = "/generate"
	EndPointMetrics  = "/metrics"
)

type RouterConfig struct {
	AllowedOrigins []string
	AccessLog      bool
	JSONLogs       bool
	// Metrics enables instrumentation and the /metrics endpoint when set.
	Metrics *metrics.Metrics
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.AccessLog {
		r.Use(httplog.RequestLogger(httplog.NewLogger(version.Service, httplog.Options{
			JSON:    cfg.JSONLogs,
			Concise: true,
		})))
	}
	// Instrument wraps Recover so recovered panics are counted as 500s.
	if cfg.Metrics != nil {
		r.Use(Instrument(cfg.Metrics))
	}
	r.Use(Recover(h.logger))
	r.Use(CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, EndPointMetrics, cfg.Metrics.Handler())
	}

	r.Get(EndPointHealth, h.Health)
	r.Post(EndPointGenerate, h.Generate)

	return r
}
