package v1

import (
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/metrics"
)

type V1 struct {
	jobs    usecase.JobUseCase
	metrics *metrics.Metrics
	logger  logger.Interface
}
