package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/zapcrm/whatsapp-integration/internal/infrastructure/http/handlers"
)

// RegisterOperational mounts the endpoints that sit outside /api: health
// probes, the Prometheus scrape endpoint and the Swagger UI.
// A nil readiness handler reports ready unconditionally.
func RegisterOperational(e *echo.Echo, readiness *handlers.ReadinessHandler, gatherer prometheus.Gatherer) {
	if readiness == nil {
		readiness = handlers.NewReadinessHandler(nil, nil)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)    // liveness  – is the process alive?
	e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
