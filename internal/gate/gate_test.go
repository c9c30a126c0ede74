package gate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/pkg/cache"
)

func newTestGate() (*FeatureGate, *cache.MemoryCache) {
	store := cache.NewMemoryCache()
	return New(store, "test_gate", nil, nil), store
}

func TestConsumeIsOneShot(t *testing.T) {
	g, _ := newTestGate()
	ctx := context.Background()

	if !g.Consume(ctx, "x", false) {
		t.Fatalf("first consume should succeed")
	}
	if g.Consume(ctx, "x", false) {
		t.Fatalf("second consume should fail")
	}
	if !g.Check(ctx, "x", false) {
		t.Fatalf("key should report locked after consume")
	}
}

func TestConsumeIsPerKey(t *testing.T) {
	g, _ := newTestGate()
	ctx := context.Background()

	if !g.Consume(ctx, "a", false) {
		t.Fatalf("consume a should succeed")
	}
	if !g.Consume(ctx, "b", false) {
		t.Fatalf("consume b should be independent of a")
	}
}

func TestBypassResetsToken(t *testing.T) {
	g, _ := newTestGate()
	ctx := context.Background()

	if !g.Consume(ctx, "x", false) {
		t.Fatalf("first consume should succeed")
	}
	// authenticated check clears the stored lock
	if g.Check(ctx, "x", true) {
		t.Fatalf("bypass check should report unlocked")
	}
	if !g.Consume(ctx, "x", false) {
		t.Fatalf("consume after bypass reset should succeed again")
	}
}

func TestBypassConsumeNeverSpends(t *testing.T) {
	g, store := newTestGate()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if !g.Consume(ctx, "x", true) {
			t.Fatalf("bypass consume %d should succeed", i)
		}
	}
	exists, err := store.Exists(ctx, "test_gate:x")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("bypass consume must not leave a lock marker")
	}
}

func TestKeyNamespace(t *testing.T) {
	g, store := newTestGate()
	ctx := context.Background()

	g.Consume(ctx, "trade_creator", false)

	var v string
	if err := store.Get(ctx, "test_gate:trade_creator", &v); err != nil {
		t.Fatalf("expected lock under namespaced key: %v", err)
	}
	if v != "locked" {
		t.Fatalf("marker = %q, want %q", v, "locked")
	}
}

// featureRecorder captures the feature labels handed to metrics.
type featureRecorder struct {
	features []string
}

func (r *featureRecorder) RecordGateConsume(feature, _ string) {
	r.features = append(r.features, feature)
}
func (r *featureRecorder) RecordSubmission(string, string)     {}
func (r *featureRecorder) RecordEvaluation(string)             {}
func (r *featureRecorder) RecordSnapshotSize(string, int)      {}
func (r *featureRecorder) RecordRemoteLatency(string, float64) {}
func (r *featureRecorder) RecordError(string)                  {}

func TestConsumeMetricDropsClientScope(t *testing.T) {
	rec := &featureRecorder{}
	g := New(cache.NewMemoryCache(), "test_gate", nil, rec)
	ctx := context.Background()

	g.Consume(ctx, "trade_creator:alice", false)
	g.Consume(ctx, "trade_creator:bob", false)

	if len(rec.features) != 2 {
		t.Fatalf("recorded %d consumes, want 2", len(rec.features))
	}
	for _, f := range rec.features {
		if f != "trade_creator" {
			t.Errorf("metric label = %q, want bare feature name", f)
		}
	}
}

// brokenStore fails every operation, simulating storage being unavailable.
type brokenStore struct{}

func (brokenStore) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("storage disabled")
}
func (brokenStore) Get(context.Context, string, interface{}) error {
	return errors.New("storage disabled")
}
func (brokenStore) Delete(context.Context, ...string) error {
	return errors.New("storage disabled")
}
func (brokenStore) Exists(context.Context, ...string) (bool, error) {
	return false, errors.New("storage disabled")
}

func TestGateFailsOpenOnStorageErrors(t *testing.T) {
	g := New(brokenStore{}, "test_gate", nil, nil)
	ctx := context.Background()

	if g.Check(ctx, "x", false) {
		t.Fatalf("broken store must read as fresh")
	}
	// every consume succeeds because the lock can never be observed
	if !g.Consume(ctx, "x", false) {
		t.Fatalf("consume must fail open")
	}
	if !g.Consume(ctx, "x", false) {
		t.Fatalf("repeat consume must still fail open")
	}
}
