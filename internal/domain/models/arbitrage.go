package models

import "encoding/json"

// PriceLevel is one order book level.
type PriceLevel struct {
	Price float64 `json:"price"`
	Qty   float64 `json:"qty"`
}

// ArbitrageOpportunity is a cross-venue opportunity as reported by the
// arbitrage service. Consumed as-is; profitability math stays server-side.
type ArbitrageOpportunity struct {
	Symbol                  string       `json:"symbol"`
	BuyVenue                string       `json:"buy_venue"`
	SellVenue               string       `json:"sell_venue"`
	VolatilityBpsPerMin     float64      `json:"volatility_bps_per_min"`
	ExpectedTransferMinutes float64      `json:"expected_transfer_minutes"`
	SafetyBufferBps         float64      `json:"safety_buffer_bps"`
	BuyFee                  float64      `json:"buy_fee"`
	SellFee                 float64      `json:"sell_fee"`
	AsksBuy                 []PriceLevel `json:"asks_buy"`
	BidsSell                []PriceLevel `json:"bids_sell"`
}

// Evaluation decisions.
const (
	DecisionExecute = "EXECUTE"
	DecisionSkip    = "SKIP"
)

// EvaluationResult is computed remotely per (opportunity, size) and consumed
// verbatim.
type EvaluationResult struct {
	ExecSpreadBps float64  `json:"exec_spread_bps"`
	SlippageBps   float64  `json:"slippage_bps"`
	LatencyBps    float64  `json:"latency_bps"`
	BreakEvenBps  float64  `json:"break_even_bps"`
	NetPnlQuote   float64  `json:"net_pnl_quote"`
	NetMarginPct  float64  `json:"net_margin_pct"`
	Decision      string   `json:"decision"`
	Notes         []string `json:"notes,omitempty"`
}

// ExecutionReceipt is the arbitrage service's answer to an execute call.
type ExecutionReceipt struct {
	Status         string  `json:"status"`
	BuyOrderID     string  `json:"buy_order_id"`
	SellOrderID    string  `json:"sell_order_id"`
	RequestedQuote float64 `json:"requested_quote"`
}

// Opaque read-only snapshots polled from the arbitrage service. Their schemas
// belong to that service; the cockpit passes them through untouched.
type (
	RiskConfig      = json.RawMessage
	InventoryView   = json.RawMessage
	ExecutionRecord = json.RawMessage
)
