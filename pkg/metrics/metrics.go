// Package metrics holds the prometheus collectors exported on /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Jobs counts background job attempts by task type and result
	Jobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "files_api",
		Name:      "jobs_total",
		Help:      "Background job attempts by type and result.",
	}, []string{"type", "result"})

	// EnqueueFailures counts jobs that could not be handed to the queue
	EnqueueFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "files_api",
		Name:      "enqueue_failures_total",
		Help:      "Jobs dropped because the queue rejected them.",
	}, []string{"type"})

	Uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "files_api",
		Name:      "uploads_total",
		Help:      "Created files by type.",
	}, []string{"type"})
)
