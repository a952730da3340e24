package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andreyxaxa/Media-Processor/config"
	kafkactrl "github.com/andreyxaxa/Media-Processor/internal/controller/kafka"
	"github.com/andreyxaxa/Media-Processor/internal/controller/restapi"
	"github.com/andreyxaxa/Media-Processor/internal/controller/worker/outbox"
	infrakafka "github.com/andreyxaxa/Media-Processor/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Media-Processor/internal/usecase/job"
	"github.com/andreyxaxa/Media-Processor/pkg/httpserver"
	"github.com/andreyxaxa/Media-Processor/pkg/kafka/consumer"
	"github.com/andreyxaxa/Media-Processor/pkg/kafka/producer"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/postgres"
)

// Run starts the combined process: HTTP intake, outbox relay and the
// queue consumer, all sharing one orchestrator wiring.
func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	deps := buildDeps(cfg, pg, l)

	// job use-case (intake + outbox bookkeeping)
	jobUseCase := job.New(deps.logRepo, deps.outboxRepo, pg, l)

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		jobUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// Kafka Consumer
	kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
	}

	// Kafka as Controller
	kafkaController := kafkactrl.New(
		deps.pipeline,
		infrakafka.NewEventConsumer(kafkaConsumer),
		deps.metrics,
		l,
		cfg.Consumer.CommitTimeout,
	)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, jobUseCase, deps.metrics, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	err = kafkaController.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - kafkaController.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}

	kcShutdownCtx, kcShutdownCancel := context.WithTimeout(ctx, cfg.Consumer.ShutdownTimeout)
	defer kcShutdownCancel()
	err = kafkaController.Shutdown(kcShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - kafkaController.Shutdown: %w", err))
	}
}
