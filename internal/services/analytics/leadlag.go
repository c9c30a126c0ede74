package analytics

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
)

// HTTPLeadLagSource fetches live lead-lag pairs from the analytics service.
type HTTPLeadLagSource struct {
	base      *httpBase
	limit     int
	maxLag    int
	intervals []string
	symbols   []string
}

func NewHTTPLeadLagSource(cfg *config.Config) *HTTPLeadLagSource {
	timeout := cfg.Analytics.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPLeadLagSource{
		base:      newHTTPBase(cfg.Analytics.BaseURL, timeout),
		limit:     cfg.Analytics.Limit,
		maxLag:    cfg.Analytics.MaxLag,
		intervals: cfg.Analytics.Intervals,
		symbols:   cfg.Analytics.Symbols,
	}
}

// FetchPairs returns the current lead-lag snapshot. The result replaces any
// previous snapshot wholesale.
func (s *HTTPLeadLagSource) FetchPairs(ctx context.Context) ([]models.LeadLagPair, error) {
	query := map[string][]string{}
	if s.limit > 0 {
		query["limit"] = []string{strconv.Itoa(s.limit)}
	}
	if s.maxLag > 0 {
		query["max_lag"] = []string{strconv.Itoa(s.maxLag)}
	}
	if len(s.intervals) > 0 {
		query["intervals"] = []string{strings.Join(s.intervals, ",")}
	}
	if len(s.symbols) > 0 {
		query["symbols"] = []string{strings.Join(s.symbols, ",")}
	}

	var pairs []models.LeadLagPair
	if err := s.base.getJSON(ctx, "/live-leadlag", query, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

var _ domsvc.LeadLagSource = (*HTTPLeadLagSource)(nil)
