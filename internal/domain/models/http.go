package models

// CreateOrderRequest is the cockpit page's order submission. ClientID scopes
// the one-shot allowance and session state to one visitor; Authenticated
// comes from the session layer upstream and maps to gate bypass.
type CreateOrderRequest struct {
	ClientID      string                 `json:"client_id" validate:"required"`
	Symbol        string                 `json:"symbol" validate:"required"`
	Exchange      string                 `json:"exchange" validate:"required"`
	OrderType     string                 `json:"order_type" default:"market" validate:"oneof=market"`
	Side          string                 `json:"side" validate:"required,oneof=buy sell"`
	Quantity      float64                `json:"quantity" validate:"required,gt=0"`
	Mode          string                 `json:"mode" default:"paper" validate:"oneof=paper live"`
	Metadata      map[string]interface{} `json:"extra_metadata,omitempty"`
	Authenticated bool                   `json:"authenticated"`
}

// TradeRequest converts the page request into the trading service payload.
func (r *CreateOrderRequest) TradeRequest() *TradeRequest {
	return &TradeRequest{
		Symbol:    r.Symbol,
		Exchange:  r.Exchange,
		OrderType: r.OrderType,
		Side:      r.Side,
		Quantity:  r.Quantity,
		Mode:      r.Mode,
		Metadata:  r.Metadata,
	}
}

// SelectPairRequest picks a pair out of the current snapshot as the client's
// submission target.
type SelectPairRequest struct {
	ClientID       string `json:"client_id" validate:"required"`
	LeaderSymbol   string `json:"leader_symbol" validate:"required"`
	FollowerSymbol string `json:"follower_symbol" validate:"required"`
	Interval       string `json:"interval,omitempty"`
}

// AutoPilotRequest escalates the client's session to live-order auto-pilot.
type AutoPilotRequest struct {
	ClientID      string `json:"client_id" validate:"required"`
	Authenticated bool   `json:"authenticated"`
}

// ArbActionRequest carries one (opportunity, size) tuple for evaluate or
// execute.
type ArbActionRequest struct {
	Opportunity ArbitrageOpportunity `json:"opportunity" validate:"required"`
	SizeQuote   float64              `json:"size_quote" validate:"required,gt=0"`
}
