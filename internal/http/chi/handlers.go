package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/Caelestis94/telehook/webhook"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

// Handlers sets up the public trigger API
func Handlers(ctx context.Context, service webhook.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("telehook", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/trigger/{public_id}", postTrigger(service).ServeHTTP)
	})

	return r
}
