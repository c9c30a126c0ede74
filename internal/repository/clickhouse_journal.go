package repository

import (
	"context"
	"database/sql"
	"fmt"

	domrepo "github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
)

// ClickHouseJournal persists submission and execution history. The tables are
// append-only; the cockpit never updates a row.
type ClickHouseJournal struct {
	db       *sql.DB
	database string
}

func NewClickHouseJournal(db *sql.DB, database string) *ClickHouseJournal {
	return &ClickHouseJournal{db: db, database: database}
}

// Schema returns idempotent DDL for the journal tables.
func (j *ClickHouseJournal) Schema() []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", j.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.order_journal (
			symbol String, exchange String, side String,
			quantity Float64, mode String, outcome String, message String,
			at DateTime
		) ENGINE=MergeTree ORDER BY (symbol, at)`, j.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.arb_executions (
			symbol String, buy_venue String, sell_venue String,
			size_quote Float64, status String,
			buy_order_id String, sell_order_id String, requested_quote Float64,
			at DateTime
		) ENGINE=MergeTree ORDER BY (symbol, at)`, j.database),
	}
}

func (j *ClickHouseJournal) RecordOrder(ctx context.Context, e *domrepo.OrderJournalEntry) error {
	query := fmt.Sprintf(
		"INSERT INTO %s.order_journal (symbol, exchange, side, quantity, mode, outcome, message, at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		j.database,
	)
	if _, err := j.db.ExecContext(ctx, query,
		e.Symbol, e.Exchange, e.Side, e.Quantity, e.Mode, e.Outcome, e.Message, e.At,
	); err != nil {
		return fmt.Errorf("insert order journal: %w", err)
	}
	return nil
}

func (j *ClickHouseJournal) RecordArbExecution(ctx context.Context, e *domrepo.ArbJournalEntry) error {
	query := fmt.Sprintf(
		"INSERT INTO %s.arb_executions (symbol, buy_venue, sell_venue, size_quote, status, buy_order_id, sell_order_id, requested_quote, at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		j.database,
	)
	if _, err := j.db.ExecContext(ctx, query,
		e.Symbol, e.BuyVenue, e.SellVenue, e.SizeQuote, e.Status,
		e.BuyOrderID, e.SellOrderID, e.RequestedQuote, e.At,
	); err != nil {
		return fmt.Errorf("insert arb execution: %w", err)
	}
	return nil
}

var _ domrepo.Journal = (*ClickHouseJournal)(nil)
