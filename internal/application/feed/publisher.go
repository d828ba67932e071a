package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aescanero/trafficapi/internal/application/traffic"
	"github.com/aescanero/trafficapi/pkg/domain"
	"github.com/aescanero/trafficapi/pkg/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topic is the event bus topic carrying snapshots
const Topic = "traffic.snapshots"

// Publisher periodically publishes snapshots
type Publisher struct {
	service  *traffic.Service
	eventBus ports.EventBus
	metrics  ports.MetricsCollector
	logger   *zap.Logger
	interval time.Duration

	mu          sync.RWMutex
	running     bool
	published   int
	failures    int
	lastPublish time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Status reports the publisher state
type Status struct {
	Running     bool      `json:"running"`
	Published   int       `json:"published"`
	Failures    int       `json:"failures"`
	LastPublish time.Time `json:"last_publish"`
	Interval    string    `json:"interval"`
}

// NewPublisher creates a new feed publisher
func NewPublisher(
	service *traffic.Service,
	eventBus ports.EventBus,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
	interval time.Duration,
) *Publisher {
	return &Publisher{
		service:  service,
		eventBus: eventBus,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
	}
}

// Start starts the publishing loop
func (p *Publisher) Start() error {
	if p.interval <= 0 {
		return fmt.Errorf("invalid feed interval: %s", p.interval)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("feed publisher already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true

	p.wg.Add(1)
	go p.run(ctx)

	p.logger.Info("feed publisher started",
		zap.Duration("interval", p.interval),
		zap.String("variant", p.service.Variant()))
	return nil
}

// Shutdown stops the loop and waits for it to exit
func (p *Publisher) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.cancel()
	p.mu.Unlock()

	p.logger.Info("shutting down feed publisher")

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("feed publisher shut down complete")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout")
	}
}

// Status returns the current publisher status
func (p *Publisher) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Status{
		Running:     p.running,
		Published:   p.published,
		Failures:    p.failures,
		LastPublish: p.lastPublish,
		Interval:    p.interval.String(),
	}
}

// run is the main publishing loop
func (p *Publisher) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PublishOnce(ctx)
		}
	}
}

// PublishOnce builds and publishes a single snapshot. Nothing is published
// once ctx is done.
func (p *Publisher) PublishOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	event := domain.Event{
		ID:        uuid.New().String(),
		Type:      domain.EventTypeSnapshot,
		Variant:   p.service.Variant(),
		Timestamp: time.Now().UTC(),
		Snapshot:  p.service.Snapshot(ctx),
	}

	if err := p.eventBus.Publish(ctx, Topic, event); err != nil {
		p.mu.Lock()
		p.failures++
		p.mu.Unlock()
		p.metrics.RecordFeedFailure()

		p.logger.Error("failed to publish snapshot",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return
	}

	p.mu.Lock()
	p.published++
	p.lastPublish = event.Timestamp
	p.mu.Unlock()
	p.metrics.RecordFeedPublished()

	p.logger.Debug("snapshot published", zap.String("event_id", event.ID))
}
