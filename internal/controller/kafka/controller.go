package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Media-Processor/internal/entity"
	kafkapc "github.com/andreyxaxa/Media-Processor/internal/infrastructure/kafka"
	"github.com/andreyxaxa/Media-Processor/internal/usecase"
	"github.com/andreyxaxa/Media-Processor/pkg/logger"
	"github.com/andreyxaxa/Media-Processor/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// KafkaController is the single-consumer worker loop: one job is driven
// fully to completion before the next delivery is fetched. Concurrency
// across jobs comes from running more instances, not more goroutines.
type KafkaController struct {
	pipeline usecase.PipelineUseCase
	ec       *kafkapc.EventConsumer
	metrics  *metrics.Metrics
	logger   logger.Interface

	commitTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(
	pipeline usecase.PipelineUseCase,
	ec *kafkapc.EventConsumer,
	m *metrics.Metrics,
	l logger.Interface,
	commitTimeout time.Duration,
) *KafkaController {
	return &KafkaController{
		pipeline:      pipeline,
		ec:            ec,
		metrics:       m,
		logger:        l,
		commitTimeout: commitTimeout,
	}
}

func (c *KafkaController) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("KafkaController - Start - controller already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				// 1. fetch one delivery
				event, err := c.ec.ReadEvent(c.ctx)
				if err != nil {
					if !errors.Is(err, context.Canceled) {
						c.logger.Error(err, "KafkaController - Start - c.ec.ReadEvent")
					}
					continue
				}

				// 2. run the full pipeline pass
				c.handle(event)
			}
		}
	}()

	return nil
}

func (c *KafkaController) handle(event kafka.Message) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(fmt.Errorf("panic %v", r), "KafkaController - handle - panic")
		}
	}()

	err := c.processJob(c.ctx, event)
	if err != nil {
		// failed jobs are dropped, never redelivered; resubmission
		// is the caller's responsibility
		c.logger.Error(err, "KafkaController - handle - c.processJob")
	}

	// commit on success and on failure alike
	commitCtx, commitCancel := context.WithTimeout(c.ctx, c.commitTimeout)
	defer commitCancel()

	if err := c.ec.CommitEvent(commitCtx, event); err != nil {
		c.logger.Error(err, "KafkaController - handle - c.ec.CommitEvent")
	}
}

func (c *KafkaController) processJob(ctx context.Context, event kafka.Message) error {
	var j entity.Job
	err := json.Unmarshal(event.Value, &j)
	if err != nil {
		return fmt.Errorf("KafkaController - processJob - json.Unmarshal: %w", err)
	}

	started := time.Now()

	kind, err := c.pipeline.Run(ctx, j)

	outcome := "completed"
	if err != nil {
		outcome = "failed"
	}

	c.metrics.JobsProcessed.WithLabelValues(string(kind), outcome).Inc()
	c.metrics.JobDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())

	if err != nil {
		return fmt.Errorf("KafkaController - processJob - c.pipeline.Run: %w", err)
	}

	return nil
}

func (c *KafkaController) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		c.ec.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return nil
	}
}
