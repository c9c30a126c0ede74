package service

import (
	"context"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
)

// LeadLagSource fetches lead-lag pair snapshots from the analytics service.
type LeadLagSource interface {
	FetchPairs(ctx context.Context) ([]models.LeadLagPair, error)
}

// OrderGateway submits trade orders to the trading service.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req *models.TradeRequest) error
}

// ArbitrageGateway talks to the arbitrage service.
type ArbitrageGateway interface {
	Evaluate(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64) (*models.EvaluationResult, error)
	Execute(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64) (*models.ExecutionReceipt, error)
	Opportunities(ctx context.Context) ([]models.ArbitrageOpportunity, error)
	RiskConfig(ctx context.Context) (models.RiskConfig, error)
	Inventory(ctx context.Context) (models.InventoryView, error)
	Executions(ctx context.Context) ([]models.ExecutionRecord, error)
}

// NotificationSink receives orchestrator feedback. Implementations must accept
// delivery when nobody is listening; a closed page is not an error.
type NotificationSink interface {
	Notify(topic string, payload interface{})
}
