package restapi

import (
	"github.com/andreyxaxa/Media-Processor/config"
	v1 "github.com/andreyxaxa/Media-Processor/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/metrics"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Media processor
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, jobs usecase.JobUseCase, m *metrics.Metrics, l logger.Interface) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewJobRoutes(apiV1Group, jobs, m, l)
	}
}
