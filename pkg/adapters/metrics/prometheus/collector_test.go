package prometheus

import (
	"testing"
	"time"

	"github.com/aescanero/trafficapi/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordSnapshotServed("random")
	c.RecordSnapshotServed("random")
	c.RecordLabelObserved(domain.LabelSevere)
	c.RecordHTTPRequest("GET", "/traffic", 200, 2*time.Millisecond)
	c.RecordFeedPublished()
	c.RecordFeedFailure()
	c.RecordFeedFailure()

	if got := testutil.ToFloat64(c.snapshotsServed.WithLabelValues("random")); got != 2 {
		t.Fatalf("expected 2 snapshots served, got %v", got)
	}
	if got := testutil.ToFloat64(c.labelsObserved.WithLabelValues("Severe")); got != 1 {
		t.Fatalf("expected 1 Severe label, got %v", got)
	}
	if got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/traffic", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
	if got := testutil.ToFloat64(c.feedPublished); got != 1 {
		t.Fatalf("expected 1 publication, got %v", got)
	}
	if got := testutil.ToFloat64(c.feedFailures); got != 2 {
		t.Fatalf("expected 2 failures, got %v", got)
	}
}

func TestNewCollector_SeparateRegistries(t *testing.T) {
	// registering twice on distinct registries must not panic
	NewCollector(prometheus.NewRegistry())
	NewCollector(prometheus.NewRegistry())
}
