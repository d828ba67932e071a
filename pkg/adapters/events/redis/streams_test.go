package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aescanero/trafficapi/pkg/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestBus(t *testing.T, group string, maxLen int64) (*StreamsEventBus, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	bus, err := NewStreamsEventBus(client, group, "test-consumer", maxLen, zap.NewNop())
	if err != nil {
		t.Fatalf("new bus: %v", err)
	}
	return bus, client
}

func TestNewStreamsEventBus_RequiresNames(t *testing.T) {
	if _, err := NewStreamsEventBus(nil, "", "c", 0, zap.NewNop()); err == nil {
		t.Fatalf("expected error for empty consumer group")
	}
}

func TestStreamsEventBus_PublishAppendsEntry(t *testing.T) {
	bus, client := newTestBus(t, "traffic-feed", 0)
	ctx := context.Background()

	ev := domain.Event{
		ID:        "ev-1",
		Type:      domain.EventTypeSnapshot,
		Variant:   "fixed",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Snapshot:  domain.Snapshot{"junction_1": domain.LabelHigh},
	}
	if err := bus.Publish(ctx, "traffic.snapshots", ev); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msgs, err := client.XRange(ctx, "traffic:events:traffic.snapshots", "-", "+").Result()
	if err != nil {
		t.Fatalf("xrange: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(msgs))
	}

	var got domain.Event
	if err := json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "ev-1" || got.Snapshot["junction_1"] != domain.LabelHigh {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestStreamsEventBus_SubscribeReceives(t *testing.T) {
	bus, _ := newTestBus(t, "traffic-feed", 100)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		_ = bus.Close()
	}()

	got := make(chan domain.Event, 1)
	if err := bus.Subscribe(ctx, "traffic.snapshots", func(ctx context.Context, ev domain.Event) error {
		got <- ev
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(context.Background(), "traffic.snapshots", domain.Event{ID: "ev-2", Type: domain.EventTypeSnapshot}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case ev := <-got:
		if ev.ID != "ev-2" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestStreamsEventBus_EverySubscriberReceives(t *testing.T) {
	bus, client := newTestBus(t, "traffic-feed", 0)
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan string, 2)
	for i := 0; i < 2; i++ {
		if err := bus.Subscribe(ctx, "t", func(ctx context.Context, ev domain.Event) error {
			got <- ev.ID
			return nil
		}); err != nil {
			t.Fatalf("subscribe %d: %v", i, err)
		}
	}

	if err := bus.Publish(context.Background(), "t", domain.Event{ID: "ev-3"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for i := 0; i < 2; i++ {
		select {
		case id := <-got:
			if id != "ev-3" {
				t.Fatalf("unexpected event %q", id)
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}

	cancel()
	_ = bus.Close()

	groups, err := client.XInfoGroups(context.Background(), "traffic:events:t").Result()
	if err != nil {
		t.Fatalf("xinfo groups: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected consumer groups to be destroyed, got %d", len(groups))
	}
}

func TestStreamsEventBus_CloseStopsLiveSubscribers(t *testing.T) {
	bus, _ := newTestBus(t, "traffic-feed", 0)

	// the subscription context is never cancelled, like a hijacked request
	if err := bus.Subscribe(context.Background(), "t", func(ctx context.Context, ev domain.Event) error {
		return nil
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	done := make(chan struct{})
	go func() {
		_ = bus.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("close blocked on a live subscriber")
	}
}
