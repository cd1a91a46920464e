package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
	"github.com/hyperterse/reportdeck/core/infrastructure/transport/http/handlers"
)

// RegisterRoutes registers the dashboard, the report API, health and metrics.
func RegisterRoutes(r chi.Router, service interfaces.ReportService, source string, gatherer prometheus.Gatherer) {
	log := logging.New("routes")

	reports := handlers.NewReportHandler(service, source)

	r.Method("GET", "/", handlers.NewDashboardHandler(service))

	r.Route("/api", func(r chi.Router) {
		r.Get("/reports", reports.List)
		r.Get("/reports/{number}", reports.Get)
		r.Get("/dashboard", reports.Dashboard)
		r.Post("/cache/purge", reports.Purge)
	})

	r.Get("/heartbeat", reports.Heartbeat)
	r.Method("GET", "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.NotFound(reports.NotFound)

	routes := []string{
		"GET /",
		"GET /api/reports",
		"GET /api/reports/{number}",
		"GET /api/dashboard",
		"POST /api/cache/purge",
		"GET /heartbeat",
		"GET /metrics",
	}
	log.Infof("Routes registered: %d", len(routes))
	for _, route := range routes {
		log.Debugf("  %s", route)
	}
}
