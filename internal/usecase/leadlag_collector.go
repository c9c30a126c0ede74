package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	domrepo "github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
)

// LeadLagCollector polls the analytics service on a fixed interval and keeps
// the current snapshot. Every refresh replaces the set wholesale; there is no
// incremental patching.
type LeadLagCollector struct {
	source   domsvc.LeadLagSource
	metrics  domrepo.Metrics
	interval time.Duration
	logger   *applogger.Logger

	mu        sync.RWMutex
	pairs     []models.LeadLagPair
	fetchedAt time.Time
}

func NewLeadLagCollector(source domsvc.LeadLagSource, metrics domrepo.Metrics, interval time.Duration, logger *applogger.Logger) *LeadLagCollector {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &LeadLagCollector{
		source:   source,
		metrics:  metrics,
		interval: interval,
		logger:   logger,
	}
}

// Start fetches once immediately, then on every tick until ctx is done.
func (c *LeadLagCollector) Start(ctx context.Context) error {
	c.refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.refresh(ctx)
		}
	}
}

// Snapshot returns the current pair set and its fetch time. Callers must not
// mutate the returned slice.
func (c *LeadLagCollector) Snapshot() ([]models.LeadLagPair, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pairs, c.fetchedAt
}

// Replace swaps in a new snapshot. Exposed for tests and manual refresh.
func (c *LeadLagCollector) Replace(pairs []models.LeadLagPair) {
	c.mu.Lock()
	c.pairs = pairs
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordSnapshotSize("leadlag", len(pairs))
	}
}

func (c *LeadLagCollector) refresh(ctx context.Context) {
	start := time.Now()
	pairs, err := c.source.FetchPairs(ctx)
	if c.metrics != nil {
		c.metrics.RecordRemoteLatency("live_leadlag", time.Since(start).Seconds())
	}
	if err != nil {
		// keep the last good snapshot on failure
		c.logger.Warn("leadlag fetch failed", applogger.Error(err))
		if c.metrics != nil {
			c.metrics.RecordError("leadlag_fetch")
		}
		return
	}
	c.Replace(pairs)
	c.logger.Debug("leadlag snapshot refreshed", applogger.Int("pairs", len(pairs)))
}
