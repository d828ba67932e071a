package traffic

import (
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/aescanero/trafficapi/pkg/domain"
)

func TestRandomSource_ShapeAndLabels(t *testing.T) {
	src := NewRandomSource(rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		snap := src.Snapshot()
		if len(snap) != 4 {
			t.Fatalf("expected 4 junctions, got %d", len(snap))
		}
		for n := 1; n <= 4; n++ {
			label, ok := snap[domain.JunctionID(n)]
			if !ok {
				t.Fatalf("missing junction_%d in %v", n, snap)
			}
			if !label.Valid() {
				t.Fatalf("unexpected label %q", label)
			}
		}
	}
}

func TestRandomSource_AllLabelsAppear(t *testing.T) {
	src := NewRandomSource(nil)

	seen := make(map[domain.Label]bool)
	for i := 0; i < 1000; i++ {
		for _, label := range src.Snapshot() {
			seen[label] = true
		}
	}

	for _, l := range domain.Labels() {
		if !seen[l] {
			t.Fatalf("label %q never drawn in 1000 snapshots", l)
		}
	}
}

func TestRandomSource_SeedIsReproducible(t *testing.T) {
	a := NewRandomSource(rand.New(rand.NewSource(42)))
	b := NewRandomSource(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		if sa, sb := a.Snapshot(), b.Snapshot(); !reflect.DeepEqual(sa, sb) {
			t.Fatalf("draw %d differs: %v vs %v", i, sa, sb)
		}
	}
}

func TestRandomSource_ConcurrentUse(t *testing.T) {
	src := NewRandomSource(rand.New(rand.NewSource(7)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(src.Snapshot()) != 4 {
					t.Errorf("unexpected snapshot size")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestFixedSource_Constant(t *testing.T) {
	src := NewFixedSource()
	want := domain.Snapshot{
		"junction_1": domain.LabelHigh,
		"junction_2": domain.LabelModerate,
		"junction_3": domain.LabelLow,
	}

	first := src.Snapshot()
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("unexpected snapshot %v", first)
	}

	// mutating a returned snapshot must not leak into the next one
	first["junction_1"] = domain.LabelSevere
	if got := src.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshot changed after caller mutation: %v", got)
	}
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		variant string
		want    string
		wantErr bool
	}{
		{variant: VariantRandom, want: VariantRandom},
		{variant: VariantFixed, want: VariantFixed},
		{variant: "live", wantErr: true},
	}

	for _, tt := range tests {
		src, err := NewSource(tt.variant, 3)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tt.variant)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.variant, err)
		}
		if src.Variant() != tt.want {
			t.Fatalf("%s: got variant %q", tt.variant, src.Variant())
		}
	}
}
