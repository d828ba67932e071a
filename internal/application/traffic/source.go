package traffic

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/aescanero/trafficapi/pkg/domain"
)

const (
	VariantRandom = "random"
	VariantFixed  = "fixed"

	randomJunctions = 4
)

// RandomSource draws every junction label independently from domain.Labels
type RandomSource struct {
	junctions []string
	labels    []domain.Label

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a random source drawing from rng.
// A nil rng gets a time-seeded generator.
func NewRandomSource(rng *rand.Rand) *RandomSource {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	junctions := make([]string, randomJunctions)
	for i := range junctions {
		junctions[i] = domain.JunctionID(i + 1)
	}

	return &RandomSource{
		junctions: junctions,
		labels:    domain.Labels(),
		rng:       rng,
	}
}

// Snapshot draws a new snapshot
func (s *RandomSource) Snapshot() domain.Snapshot {
	snap := make(domain.Snapshot, len(s.junctions))

	// rand.Rand is not safe for concurrent use
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.junctions {
		snap[j] = s.labels[s.rng.Intn(len(s.labels))]
	}

	return snap
}

// Junctions returns the junctions covered by the source
func (s *RandomSource) Junctions() []string {
	return append([]string(nil), s.junctions...)
}

// Variant returns "random"
func (s *RandomSource) Variant() string {
	return VariantRandom
}

// FixedSource always reports the same three junction labels
type FixedSource struct{}

// NewFixedSource creates a fixed source
func NewFixedSource() *FixedSource {
	return &FixedSource{}
}

// Snapshot returns a new map holding the constant labels
func (s *FixedSource) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		"junction_1": domain.LabelHigh,
		"junction_2": domain.LabelModerate,
		"junction_3": domain.LabelLow,
	}
}

// Junctions returns the junctions covered by the source
func (s *FixedSource) Junctions() []string {
	return []string{"junction_1", "junction_2", "junction_3"}
}

// Variant returns "fixed"
func (s *FixedSource) Variant() string {
	return VariantFixed
}

// NewSource creates the source for a variant. A zero seed means the random
// source is time seeded.
func NewSource(variant string, seed int64) (Source, error) {
	switch variant {
	case VariantRandom:
		var rng *rand.Rand
		if seed != 0 {
			rng = rand.New(rand.NewSource(seed))
		}
		return NewRandomSource(rng), nil
	case VariantFixed:
		return NewFixedSource(), nil
	default:
		return nil, fmt.Errorf("unsupported traffic variant: %s", variant)
	}
}
