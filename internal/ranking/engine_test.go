package ranking

import (
	"testing"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestScoreWeights(t *testing.T) {
	p := &models.LeadLagPair{
		LeaderSymbol:       "BTCUSDT",
		FollowerSymbol:     "ETHUSDT",
		BestAbsCorrelation: 0.8,
		HitRate:            0.7,
		WhaleAlignment:     &models.WhaleAlignment{Score: 0.5},
	}
	got := Score(p)
	want := 0.5*0.8 + 0.3*0.7 + 0.2*0.5 // 0.71
	if got != want {
		t.Fatalf("Score() = %v, want %v", got, want)
	}
}

func TestScoreMissingFields(t *testing.T) {
	tests := []struct {
		name string
		pair *models.LeadLagPair
		want float64
	}{
		{"nil pair", nil, 0},
		{"empty pair", &models.LeadLagPair{}, 0},
		{"correlation only", &models.LeadLagPair{BestAbsCorrelation: 1}, 0.5},
		{"hit rate only", &models.LeadLagPair{HitRate: 1}, 0.3},
		{"whale only", &models.LeadLagPair{WhaleAlignment: &models.WhaleAlignment{Score: 1}}, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.pair); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreBoundsAndMonotonicity(t *testing.T) {
	base := &models.LeadLagPair{
		BestAbsCorrelation: 0.4,
		HitRate:            0.4,
		WhaleAlignment:     &models.WhaleAlignment{Score: 0.4},
	}
	s := Score(base)
	if s < 0 || s > 1 {
		t.Fatalf("score %v out of [0,1]", s)
	}

	higherCorr := *base
	higherCorr.BestAbsCorrelation = 0.9
	if Score(&higherCorr) <= s {
		t.Errorf("score not increasing in correlation")
	}

	higherHit := *base
	higherHit.HitRate = 0.9
	if Score(&higherHit) <= s {
		t.Errorf("score not increasing in hit rate")
	}

	higherWhale := *base
	higherWhale.WhaleAlignment = &models.WhaleAlignment{Score: 0.9}
	if Score(&higherWhale) <= s {
		t.Errorf("score not increasing in whale score")
	}
}

func TestFormatLag(t *testing.T) {
	tests := []struct {
		name string
		pair *models.LeadLagPair
		want string
	}{
		{"seconds under cutoff", &models.LeadLagPair{LagSeconds: fptr(45)}, "45s"},
		{"seconds at cutoff fall to minutes", &models.LeadLagPair{LagSeconds: fptr(150), LagMinutes: fptr(3)}, "3m"},
		{"minutes only", &models.LeadLagPair{LagMinutes: fptr(7)}, "7m"},
		{"bars", &models.LeadLagPair{LagBars: iptr(4)}, "4 bars"},
		{"nothing", &models.LeadLagPair{}, "n/a"},
		{"nil pair", nil, "n/a"},
		{"big seconds no fallback", &models.LeadLagPair{LagSeconds: fptr(600)}, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLag(tt.pair); got != tt.want {
				t.Errorf("FormatLag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroupByIntervalFiltersAndSorts(t *testing.T) {
	pairs := []models.LeadLagPair{
		{LeaderSymbol: "A", FollowerSymbol: "B", Interval: "5m", BestAbsCorrelation: 0.2},
		{LeaderSymbol: "", FollowerSymbol: "B", Interval: "5m", BestAbsCorrelation: 0.9},
		{LeaderSymbol: "C", FollowerSymbol: "", Interval: "5m", BestAbsCorrelation: 0.9},
		{LeaderSymbol: "C", FollowerSymbol: "D", Interval: "5m", BestAbsCorrelation: 0.8},
		{LeaderSymbol: "E", FollowerSymbol: "F", Interval: "1m", BestAbsCorrelation: 0.5},
	}

	groups := GroupByInterval(pairs)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	fiveMin := groups["5m"]
	if len(fiveMin) != 2 {
		t.Fatalf("expected 2 displayable pairs in 5m, got %d", len(fiveMin))
	}
	if fiveMin[0].LeaderSymbol != "C" || fiveMin[1].LeaderSymbol != "A" {
		t.Errorf("5m bucket not sorted by score desc: %v, %v", fiveMin[0].LeaderSymbol, fiveMin[1].LeaderSymbol)
	}
	for _, g := range groups {
		for _, p := range g {
			if p.LeaderSymbol == "" || p.FollowerSymbol == "" {
				t.Errorf("group contains non-displayable pair %+v", p)
			}
		}
	}
}

func TestGroupByIntervalStableTies(t *testing.T) {
	pairs := []models.LeadLagPair{
		{LeaderSymbol: "first", FollowerSymbol: "X", Interval: "1m", BestAbsCorrelation: 0.5},
		{LeaderSymbol: "second", FollowerSymbol: "Y", Interval: "1m", BestAbsCorrelation: 0.5},
		{LeaderSymbol: "third", FollowerSymbol: "Z", Interval: "1m", BestAbsCorrelation: 0.5},
	}
	bucket := GroupByInterval(pairs)["1m"]
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if bucket[i].LeaderSymbol != w {
			t.Fatalf("tie order broken at %d: got %s, want %s", i, bucket[i].LeaderSymbol, w)
		}
	}
}

func TestSelectTop(t *testing.T) {
	if got := SelectTop(nil); got != nil {
		t.Fatalf("SelectTop(nil) = %+v, want nil", got)
	}
	if got := SelectTop([]models.LeadLagPair{}); got != nil {
		t.Fatalf("SelectTop(empty) = %+v, want nil", got)
	}

	single := []models.LeadLagPair{{LeaderSymbol: "A", FollowerSymbol: "B"}}
	if got := SelectTop(single); got == nil || got.LeaderSymbol != "A" {
		t.Fatalf("SelectTop(single) = %+v, want the single pair", got)
	}

	// highest across intervals, ties go to first occurrence
	pairs := []models.LeadLagPair{
		{LeaderSymbol: "low", FollowerSymbol: "X", Interval: "1m", BestAbsCorrelation: 0.2},
		{LeaderSymbol: "tie1", FollowerSymbol: "Y", Interval: "5m", BestAbsCorrelation: 0.8},
		{LeaderSymbol: "tie2", FollowerSymbol: "Z", Interval: "15m", BestAbsCorrelation: 0.8},
	}
	got := SelectTop(pairs)
	if got == nil || got.LeaderSymbol != "tie1" {
		t.Fatalf("SelectTop tie = %+v, want tie1", got)
	}
}

func TestSelectTopDoesNotMutateInput(t *testing.T) {
	pairs := []models.LeadLagPair{
		{LeaderSymbol: "A", FollowerSymbol: "B", BestAbsCorrelation: 0.9},
		{LeaderSymbol: "C", FollowerSymbol: "D", BestAbsCorrelation: 0.1},
	}
	top := SelectTop(pairs)
	top.LeaderSymbol = "mutated"
	if pairs[0].LeaderSymbol != "A" {
		t.Fatalf("SelectTop returned a reference into the input slice")
	}
}
