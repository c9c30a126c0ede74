package usecase

import (
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	"github.com/Manzely360/3omla-cloud-sub001/internal/ranking"
)

// RankedPair is a pair enriched with its score and a display-ready lag label.
type RankedPair struct {
	models.LeadLagPair
	Score    float64 `json:"score"`
	LagLabel string  `json:"lag_label"`
}

// Cockpit is the read side of the lead-lag view: it derives ranked views from
// the collector's current snapshot on every call.
type Cockpit struct {
	collector *LeadLagCollector
}

func NewCockpit(collector *LeadLagCollector) *Cockpit {
	return &Cockpit{collector: collector}
}

// Groups returns pairs bucketed by interval, each bucket ranked by score.
func (c *Cockpit) Groups() (map[string][]RankedPair, time.Time) {
	pairs, at := c.collector.Snapshot()
	grouped := ranking.GroupByInterval(pairs)

	out := make(map[string][]RankedPair, len(grouped))
	for interval, bucket := range grouped {
		ranked := make([]RankedPair, 0, len(bucket))
		for i := range bucket {
			ranked = append(ranked, enrich(bucket[i]))
		}
		out[interval] = ranked
	}
	return out, at
}

// Top returns the single best pair across all intervals, or nil.
func (c *Cockpit) Top() (*RankedPair, time.Time) {
	pairs, at := c.collector.Snapshot()
	best := ranking.SelectTop(pairs)
	if best == nil {
		return nil, at
	}
	rp := enrich(*best)
	return &rp, at
}

func enrich(p models.LeadLagPair) RankedPair {
	return RankedPair{
		LeadLagPair: p,
		Score:       ranking.Score(&p),
		LagLabel:    ranking.FormatLag(&p),
	}
}
