package repository

import (
	"context"
	"time"
)

// Metrics abstracts operational metrics recording.
type Metrics interface {
	RecordGateConsume(feature, outcome string)
	RecordSubmission(mode, outcome string)
	RecordEvaluation(decision string)
	RecordSnapshotSize(source string, pairs int)
	RecordRemoteLatency(call string, seconds float64)
	RecordError(kind string)
}

// OrderJournalEntry is one persisted submission outcome.
type OrderJournalEntry struct {
	Symbol   string
	Exchange string
	Side     string
	Quantity float64
	Mode     string
	Outcome  string
	Message  string
	At       time.Time
}

// ArbJournalEntry is one persisted arbitrage execution receipt.
type ArbJournalEntry struct {
	Symbol         string
	BuyVenue       string
	SellVenue      string
	SizeQuote      float64
	Status         string
	BuyOrderID     string
	SellOrderID    string
	RequestedQuote float64
	At             time.Time
}

// Journal persists submission and execution history.
type Journal interface {
	RecordOrder(ctx context.Context, e *OrderJournalEntry) error
	RecordArbExecution(ctx context.Context, e *ArbJournalEntry) error
}

// AuditTrail publishes submission outcomes to the audit stream.
type AuditTrail interface {
	Publish(ctx context.Context, event interface{}) error
}
