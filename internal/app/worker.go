package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Media-Processor/config"
	kafkactrl "github.com/andreyxaxa/Media-Processor/internal/controller/kafka"
	infrakafka "github.com/andreyxaxa/Media-Processor/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Media-Processor/internal/infrastructure/processor"
	"github.com/andreyxaxa/Media-Processor/internal/infrastructure/remote"
	"github.com/andreyxaxa/Media-Processor/internal/repo/persistent"
	"github.com/andreyxaxa/Media-Processor/internal/usecase/joblog"
	"github.com/andreyxaxa/Media-Processor/internal/usecase/pipeline"
	"github.com/andreyxaxa/Media-Processor/pkg/kafka/consumer"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/metrics"
	"github.com/andreyxaxa/Media-Processor/pkg/postgres"
)

// deps is the orchestrator wiring shared by both entry points, so the
// standalone worker and the combined process run the same pipeline.
type deps struct {
	logRepo    *persistent.JobLogRepo
	outboxRepo *persistent.JobOutboxRepo
	pipeline   *pipeline.PipelineUseCase
	metrics    *metrics.Metrics
}

func buildDeps(cfg *config.Config, pg *postgres.Postgres, l logger.Interface) deps {
	logRepo := persistent.NewJobLogRepo(pg)

	store := remote.New(cfg.Worker.ProbeTimeout)

	return deps{
		logRepo:    logRepo,
		outboxRepo: persistent.NewJobOutboxRepo(pg),
		pipeline: pipeline.New(
			store,
			processor.NewImage(),
			processor.NewVideo(),
			processor.NewPDF(l),
			joblog.New(logRepo, l),
			cfg.Worker.TempDir,
			l,
		),
		metrics: metrics.New(),
	}
}

// RunWorker starts a consumer-only process. Scaling out means running
// more of these; each one is an independent single-threaded pipeline.
func RunWorker(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - RunWorker - postgres.New: %w", err))
	}
	defer pg.Close()

	deps := buildDeps(cfg, pg, l)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
	if err != nil {
		l.Fatal(fmt.Errorf("app - RunWorker - consumer.New: %w", err))
	}

	// Kafka as Controller
	kafkaController := kafkactrl.New(
		deps.pipeline,
		infrakafka.NewEventConsumer(kafkaConsumer),
		deps.metrics,
		l,
		cfg.Consumer.CommitTimeout,
	)

	err = kafkaController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - RunWorker - kafkaController.Start: %w", err))
	}

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	s := <-interrupt
	l.Info("app - RunWorker - signal: %s", s.String())

	// Shutdown
	kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.Consumer.ShutdownTimeout)
	defer kcShutdownCancel()
	err = kafkaController.Shutdown(kcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - RunWorker - kafkaController.Shutdown: %w", err))
	}
}
