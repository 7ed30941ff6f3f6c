package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for the HTTP surface and the event lifecycle
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// EventOperationsTotal counts successful mutations by operation
	// (created, updated, deleted, mint_attached).
	EventOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_operations_total",
			Help: "Total number of successful event mutations",
		},
		[]string{"operation"},
	)

	EventValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_validation_failures_total",
			Help: "Total number of rejected event inputs",
		},
	)

	ImageUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_image_uploads_total",
			Help: "Total number of event image uploads by result",
		},
		[]string{"result"},
	)

	OrphanImagesRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "event_orphan_images_removed_total",
			Help: "Total number of unreferenced event images removed from storage",
		},
	)
)

const (
	OpCreated      = "created"
	OpUpdated      = "updated"
	OpDeleted      = "deleted"
	OpMintAttached = "mint_attached"

	UploadSuccess  = "success"
	UploadRejected = "rejected"
	UploadFailed   = "failed"
)

var registerOnce sync.Once

// Register registers all metrics with the default registry. Safe to call twice.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			EventOperationsTotal,
			EventValidationFailuresTotal,
			ImageUploadsTotal,
			OrphanImagesRemovedTotal,
		)
	})
}
