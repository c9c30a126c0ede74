package models

// MoveProjection is the server's projection of the follower move implied by a
// leader move.
type MoveProjection struct {
	LeaderMove           float64 `json:"leader_move"`
	ExpectedFollowerMove float64 `json:"expected_follower_move"`
	Ratio                float64 `json:"ratio"`
	RSquared             float64 `json:"r_squared"`
}

// WhaleAlignment describes how large-holder flow on both legs lines up.
type WhaleAlignment struct {
	Score         float64 `json:"score"`
	SameDirection bool    `json:"same_direction"`
	LeaderBias    string  `json:"leader_bias,omitempty"`
	FollowerBias  string  `json:"follower_bias,omitempty"`
	Events        int     `json:"events,omitempty"`
}

// LeadLagPair is one detected leader/follower relationship for one interval,
// exactly as the analytics service reports it. Optional fields are pointers so
// absence survives the round trip; a fresh fetch replaces the whole set.
type LeadLagPair struct {
	LeaderSymbol       string          `json:"leader_symbol"`
	FollowerSymbol     string          `json:"follower_symbol"`
	Interval           string          `json:"interval"`
	LagSeconds         *float64        `json:"lag_seconds,omitempty"`
	LagMinutes         *float64        `json:"lag_minutes,omitempty"`
	LagBars            *int            `json:"lag_bars,omitempty"`
	SampleSize         int             `json:"sample_size,omitempty"`
	BestAbsCorrelation float64         `json:"best_abs_correlation,omitempty"`
	HitRate            float64         `json:"hit_rate,omitempty"`
	MoveProjection     *MoveProjection `json:"move_projection,omitempty"`
	WhaleAlignment     *WhaleAlignment `json:"whale_alignment,omitempty"`
}

// Displayable reports whether the pair carries both symbols. Records failing
// this are discarded before ranking.
func (p *LeadLagPair) Displayable() bool {
	return p.LeaderSymbol != "" && p.FollowerSymbol != ""
}
