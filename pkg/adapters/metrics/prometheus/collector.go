package prometheus

import (
	"strconv"
	"time"

	"github.com/aescanero/trafficapi/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	snapshotsServed *prometheus.CounterVec
	labelsObserved  *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	feedPublished   prometheus.Counter
	feedFailures    prometheus.Counter
}

// NewCollector creates a new Prometheus metrics collector registered on reg.
// Pass prometheus.DefaultRegisterer to expose the metrics on promhttp.Handler.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		snapshotsServed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_snapshots_served_total",
				Help: "Total number of traffic snapshots built",
			},
			[]string{"variant"},
		),
		labelsObserved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_labels_observed_total",
				Help: "Total number of congestion labels reported, per label",
			},
			[]string{"label"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traffic_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "traffic_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"path"},
		),
		feedPublished: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "traffic_feed_published_total",
				Help: "Total number of snapshots published on the feed",
			},
		),
		feedFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "traffic_feed_failures_total",
				Help: "Total number of failed feed publications",
			},
		),
	}
}

// RecordSnapshotServed increments the count of built snapshots
func (c *Collector) RecordSnapshotServed(variant string) {
	c.snapshotsServed.WithLabelValues(variant).Inc()
}

// RecordLabelObserved increments the count for a congestion label
func (c *Collector) RecordLabelObserved(label domain.Label) {
	c.labelsObserved.WithLabelValues(string(label)).Inc()
}

// RecordHTTPRequest records a served HTTP request
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordFeedPublished increments the count of published feed events
func (c *Collector) RecordFeedPublished() {
	c.feedPublished.Inc()
}

// RecordFeedFailure increments the count of failed feed publications
func (c *Collector) RecordFeedFailure() {
	c.feedFailures.Inc()
}
