// Package metrics holds prometheus collectors for the processing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	JobsQueued    prometheus.Counter
	JobsProcessed *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		JobsQueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "media_processor_jobs_queued_total",
			Help: "Jobs accepted at intake and persisted for dispatch.",
		}),
		JobsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "media_processor_jobs_processed_total",
			Help: "Jobs pulled off the queue, by asset kind and outcome.",
		}, []string{"kind", "outcome"}),
		JobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "media_processor_job_duration_seconds",
			Help:    "Wall time of one full pipeline pass.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"kind"}),
	}
}
