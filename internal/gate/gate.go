// Package gate implements the one-shot feature gate: each feature key grants
// a single free use to unauthenticated callers, then locks until an
// authenticated request resets it.
package gate

import (
	"context"
	"errors"
	"strings"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/cache"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
)

// lockMarker is the literal stored under the gate key. Absence means fresh.
const lockMarker = "locked"

// FeatureGate tracks per-feature one-shot allowances in a durable store.
// Store failures never reach the caller: the gate fails open and reports
// fresh, which is the cheaper mistake for a trial gate.
type FeatureGate struct {
	store     cache.Service
	namespace string
	logger    *applogger.Logger
	metrics   repository.Metrics
}

// New creates a feature gate over the given store. metrics may be nil.
func New(store cache.Service, namespace string, logger *applogger.Logger, metrics repository.Metrics) *FeatureGate {
	if namespace == "" {
		namespace = "3omla_gate"
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &FeatureGate{
		store:     store,
		namespace: namespace,
		logger:    logger,
		metrics:   metrics,
	}
}

// Check reports whether the key is locked. With bypass it always reports
// unlocked and actively clears any stored lock, so a user who logs in after
// exhausting the allowance regains a clean slate.
func (g *FeatureGate) Check(ctx context.Context, featureKey string, bypass bool) bool {
	if bypass {
		g.clear(ctx, featureKey)
		return false
	}
	return g.isLocked(ctx, featureKey)
}

// Consume spends the one-shot allowance. The first call per fresh key locks it
// and returns true; every later call returns false until a bypass reset.
// Bypass callers always get true and never spend anything.
func (g *FeatureGate) Consume(ctx context.Context, featureKey string, bypass bool) bool {
	if bypass {
		g.clear(ctx, featureKey)
		g.record(featureKey, "bypass")
		return true
	}

	if g.isLocked(ctx, featureKey) {
		g.record(featureKey, "locked")
		return false
	}

	// Read-then-write: two callers racing here can both win. Accepted; see
	// the cross-tab note in the product docs.
	if err := g.store.Set(ctx, g.key(featureKey), lockMarker, 0); err != nil {
		g.logger.Warn("gate store write failed, failing open",
			applogger.String("feature", featureKey), applogger.Error(err))
	}
	g.record(featureKey, "granted")
	return true
}

func (g *FeatureGate) isLocked(ctx context.Context, featureKey string) bool {
	var v string
	err := g.store.Get(ctx, g.key(featureKey), &v)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			g.logger.Warn("gate store read failed, failing open",
				applogger.String("feature", featureKey), applogger.Error(err))
		}
		return false
	}
	return v == lockMarker
}

func (g *FeatureGate) clear(ctx context.Context, featureKey string) {
	if err := g.store.Delete(ctx, g.key(featureKey)); err != nil {
		g.logger.Warn("gate store clear failed",
			applogger.String("feature", featureKey), applogger.Error(err))
	}
}

func (g *FeatureGate) key(featureKey string) string {
	return g.namespace + ":" + featureKey
}

// record counts the consume under the bare feature name. Keys arrive scoped
// per client (feature:client_id); the client part stays out of the metric
// label to keep cardinality bounded.
func (g *FeatureGate) record(featureKey, outcome string) {
	if g.metrics == nil {
		return
	}
	feature := featureKey
	if i := strings.Index(feature, ":"); i >= 0 {
		feature = feature[:i]
	}
	g.metrics.RecordGateConsume(feature, outcome)
}
