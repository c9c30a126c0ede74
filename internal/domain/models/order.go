package models

import "time"

// Order sides and modes. The cockpit only ever places market orders.
const (
	SideBuy  = "buy"
	SideSell = "sell"

	ModePaper = "paper"
	ModeLive  = "live"

	OrderTypeMarket = "market"
)

// TradeRequest is the order-creation payload sent to the trading service.
// Built fresh per submission, never mutated after send.
type TradeRequest struct {
	Symbol    string                 `json:"symbol" validate:"required"`
	Exchange  string                 `json:"exchange" validate:"required"`
	OrderType string                 `json:"order_type" default:"market" validate:"oneof=market"`
	Side      string                 `json:"side" validate:"required,oneof=buy sell"`
	Quantity  float64                `json:"quantity" validate:"required,gt=0"`
	Mode      string                 `json:"mode" default:"paper" validate:"oneof=paper live"`
	Metadata  map[string]interface{} `json:"extra_metadata,omitempty"`
}

// FeedbackStatus is the outcome class surfaced to the cockpit page.
type FeedbackStatus string

const (
	FeedbackSuccess FeedbackStatus = "success"
	FeedbackError   FeedbackStatus = "error"
)

// Feedback is the single value every submission outcome collapses into.
// RequireSignup is set when the one-shot allowance is spent, so the page can
// show a sign-up call-to-action instead of a plain error.
type Feedback struct {
	Status        FeedbackStatus `json:"status"`
	Message       string         `json:"message"`
	RequireSignup bool           `json:"require_signup,omitempty"`
	At            time.Time      `json:"at"`
}
