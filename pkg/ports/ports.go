// Package ports declares the interfaces between the application layer and
// its adapters.
package ports

import (
	"context"
	"time"

	"github.com/aescanero/trafficapi/pkg/domain"
)

// SnapshotSource produces traffic snapshots
type SnapshotSource interface {
	// Snapshot returns a freshly built snapshot owned by the caller
	Snapshot() domain.Snapshot
	// Junctions returns the junction identifiers covered by the source
	Junctions() []string
	// Variant names the source ("random" or "fixed")
	Variant() string
}

// EventHandler processes a feed event
type EventHandler func(ctx context.Context, event domain.Event) error

// EventBus publishes and delivers feed events
type EventBus interface {
	Publish(ctx context.Context, topic string, event domain.Event) error
	Subscribe(ctx context.Context, topic string, handler EventHandler) error
	Close() error
}

// MetricsCollector records service metrics
type MetricsCollector interface {
	RecordSnapshotServed(variant string)
	RecordLabelObserved(label domain.Label)
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
	RecordFeedPublished()
	RecordFeedFailure()
}
