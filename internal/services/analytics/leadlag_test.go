package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
)

func leadLagConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Analytics.BaseURL = baseURL
	cfg.Analytics.Timeout = 5 * time.Second
	cfg.Analytics.Limit = 10
	cfg.Analytics.MaxLag = 300
	cfg.Analytics.Intervals = []string{"5m", "15m"}
	cfg.Analytics.Symbols = []string{"BTCUSDT", "ETHUSDT"}
	return cfg
}

func TestFetchPairsParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/live-leadlag" {
			t.Errorf("path = %q, want /live-leadlag", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"leader_symbol": "BTCUSDT",
				"follower_symbol": "ETHUSDT",
				"interval": "5m",
				"lag_seconds": 45,
				"best_abs_correlation": 0.82,
				"hit_rate": 0.7,
				"move_projection": {"leader_move": 0.01, "expected_follower_move": -0.02, "ratio": -2, "r_squared": 0.6},
				"whale_alignment": {"score": 0.4, "same_direction": true}
			},
			{
				"leader_symbol": "BTCUSDT",
				"follower_symbol": "SOLUSDT",
				"interval": "15m"
			}
		]`))
	}))
	defer srv.Close()

	src := NewHTTPLeadLagSource(leadLagConfig(srv.URL))
	pairs, err := src.FetchPairs(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}

	first := pairs[0]
	if first.LagSeconds == nil || *first.LagSeconds != 45 {
		t.Errorf("lag_seconds = %v, want 45", first.LagSeconds)
	}
	if first.MoveProjection == nil || first.MoveProjection.ExpectedFollowerMove != -0.02 {
		t.Errorf("move projection not decoded: %+v", first.MoveProjection)
	}
	if first.WhaleAlignment == nil || first.WhaleAlignment.Score != 0.4 {
		t.Errorf("whale alignment not decoded: %+v", first.WhaleAlignment)
	}

	// optional fields stay nil when absent
	second := pairs[1]
	if second.LagSeconds != nil || second.MoveProjection != nil || second.WhaleAlignment != nil {
		t.Errorf("optional fields should be nil when omitted: %+v", second)
	}
}

func TestFetchPairsSendsFilters(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	src := NewHTTPLeadLagSource(leadLagConfig(srv.URL))
	if _, err := src.FetchPairs(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	want := map[string]string{
		"limit":     "10",
		"max_lag":   "300",
		"intervals": "5m,15m",
		"symbols":   "BTCUSDT,ETHUSDT",
	}
	for key, value := range want {
		if got := query[key]; len(got) != 1 || got[0] != value {
			t.Errorf("query[%s] = %v, want %q", key, got, value)
		}
	}
}

func TestFetchPairsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "analytics rebuilding", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPLeadLagSource(leadLagConfig(srv.URL))
	if _, err := src.FetchPairs(context.Background()); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}
