package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/formsubmit-backend/internal/config"
	"github.com/heartmarshall/formsubmit-backend/internal/transport/middleware"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Logger      *slog.Logger
	CORS        config.CORSConfig
	Health      *HealthHandler
	Submissions *SubmissionHandler

	// Metrics serves the exposition endpoint at MetricsPath; nil disables it.
	Metrics     http.Handler
	MetricsPath string
	// HTTPObserver receives per-route request metrics; nil disables them.
	HTTPObserver middleware.HTTPObserver
}

// NewRouter builds the HTTP surface of the service.
func NewRouter(d RouterDeps) http.Handler {
	var observe middleware.Middleware
	if d.HTTPObserver != nil {
		observe = middleware.Metrics(d.HTTPObserver)
	}

	r := chi.NewRouter()
	r.Use(middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORS(d.CORS),
		observe,
	))
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/", d.Submissions.FormPage)
	r.Post("/submit", d.Submissions.Submit)
	r.Get("/submissions/{id}", d.Submissions.Get)

	r.Get("/live", d.Health.Live)
	r.Get("/health", d.Health.Health)

	if d.Metrics != nil {
		r.Method(http.MethodGet, d.MetricsPath, d.Metrics)
	}

	return r
}
