package traffic

import (
	"context"

	"github.com/aescanero/trafficapi/pkg/domain"
	"github.com/aescanero/trafficapi/pkg/ports"
	"go.uber.org/zap"
)

// Source is the snapshot source used by the service
type Source = ports.SnapshotSource

// Service serves traffic snapshots
type Service struct {
	source  Source
	metrics ports.MetricsCollector
	logger  *zap.Logger
}

// NewService creates a new traffic service
func NewService(source Source, metrics ports.MetricsCollector, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		metrics: metrics,
		logger:  logger,
	}
}

// Snapshot builds one snapshot. The result belongs to the caller.
func (s *Service) Snapshot(ctx context.Context) domain.Snapshot {
	snap := s.source.Snapshot()

	s.metrics.RecordSnapshotServed(s.source.Variant())
	for _, label := range snap {
		s.metrics.RecordLabelObserved(label)
	}

	s.logger.Debug("snapshot built",
		zap.String("variant", s.source.Variant()),
		zap.Int("junctions", len(snap)))

	return snap
}

// Variant returns the variant of the underlying source
func (s *Service) Variant() string {
	return s.source.Variant()
}

// Junctions returns the junctions reported by the service
func (s *Service) Junctions() []string {
	return s.source.Junctions()
}
