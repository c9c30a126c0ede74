// Package ranking holds the pure scoring and selection logic for lead-lag
// pairs. Everything here re-derives its output from the pair set it is given;
// the set is a point-in-time snapshot replaced wholesale on each refresh.
package ranking

import (
	"fmt"
	"sort"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
)

// Score weights. Correlation dominates, hit rate second, whale flow last.
const (
	weightCorrelation = 0.5
	weightHitRate     = 0.3
	weightWhale       = 0.2
)

// Lags at or above this many seconds read better in minutes.
const lagSecondsCutoff = 120

// Score returns the composite quality score for a pair. Missing fields count
// as zero, so the result stays in [0,1] for well-formed input.
func Score(p *models.LeadLagPair) float64 {
	if p == nil {
		return 0
	}
	var whale float64
	if p.WhaleAlignment != nil {
		whale = p.WhaleAlignment.Score
	}
	return weightCorrelation*p.BestAbsCorrelation + weightHitRate*p.HitRate + weightWhale*whale
}

// GroupByInterval buckets displayable pairs by interval, each bucket sorted by
// score descending. Equal scores keep their input order.
func GroupByInterval(pairs []models.LeadLagPair) map[string][]models.LeadLagPair {
	groups := make(map[string][]models.LeadLagPair)
	for _, p := range pairs {
		if !p.Displayable() {
			continue
		}
		groups[p.Interval] = append(groups[p.Interval], p)
	}
	for interval, bucket := range groups {
		sort.SliceStable(bucket, func(i, j int) bool {
			return Score(&bucket[i]) > Score(&bucket[j])
		})
		groups[interval] = bucket
	}
	return groups
}

// SelectTop returns the single highest-scoring displayable pair across all
// intervals, or nil when there is none. Ties go to the first occurrence.
func SelectTop(pairs []models.LeadLagPair) *models.LeadLagPair {
	var best *models.LeadLagPair
	var bestScore float64
	for i := range pairs {
		p := &pairs[i]
		if !p.Displayable() {
			continue
		}
		s := Score(p)
		if best == nil || s > bestScore {
			best = p
			bestScore = s
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// FormatLag renders the pair's lag in the finest unit available: seconds under
// the two-minute cutoff, then minutes, then bar count, then "n/a".
func FormatLag(p *models.LeadLagPair) string {
	if p == nil {
		return "n/a"
	}
	if p.LagSeconds != nil && *p.LagSeconds < lagSecondsCutoff {
		return fmt.Sprintf("%ds", int(*p.LagSeconds))
	}
	if p.LagMinutes != nil {
		return fmt.Sprintf("%dm", int(*p.LagMinutes))
	}
	if p.LagBars != nil {
		return fmt.Sprintf("%d bars", *p.LagBars)
	}
	return "n/a"
}
