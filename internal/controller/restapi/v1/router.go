package v1

import (
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/metrics"
	"github.com/gofiber/fiber/v2"
)

func NewJobRoutes(apiV1Group fiber.Router, jobs usecase.JobUseCase, m *metrics.Metrics, l logger.Interface) {
	r := &V1{jobs: jobs, metrics: m, logger: l}

	{
		apiV1Group.Post("/transform", r.transformAsset)
		apiV1Group.Get("/logs", r.getAssetLog)
	}
}
