package arbitrage

import (
	"context"
	"fmt"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
	xhttp "github.com/Manzely360/3omla-cloud-sub001/pkg/http"
)

// HTTPArbitrageGateway talks to the arbitrage service. Execution on that
// service is always a simulated fill; no funds move from here.
type HTTPArbitrageGateway struct {
	baseURL string
	client  *xhttp.Client
}

func NewHTTPArbitrageGateway(cfg *config.Config) *HTTPArbitrageGateway {
	timeout := cfg.Arbitrage.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPArbitrageGateway{
		baseURL: cfg.Arbitrage.BaseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// evalPayload is the evaluate/execute request body: the opportunity plus the
// requested quote size.
type evalPayload struct {
	models.ArbitrageOpportunity
	SizeQuote float64 `json:"size_quote"`
}

func (g *HTTPArbitrageGateway) Evaluate(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64) (*models.EvaluationResult, error) {
	var result models.EvaluationResult
	if err := g.postJSON(ctx, "/evaluate", evalPayload{ArbitrageOpportunity: *opp, SizeQuote: sizeQuote}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPArbitrageGateway) Execute(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64) (*models.ExecutionReceipt, error) {
	var receipt models.ExecutionReceipt
	if err := g.postJSON(ctx, "/execute", evalPayload{ArbitrageOpportunity: *opp, SizeQuote: sizeQuote}, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (g *HTTPArbitrageGateway) Opportunities(ctx context.Context) ([]models.ArbitrageOpportunity, error) {
	var opps []models.ArbitrageOpportunity
	if err := g.getJSON(ctx, "/opportunities", &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (g *HTTPArbitrageGateway) RiskConfig(ctx context.Context) (models.RiskConfig, error) {
	var raw models.RiskConfig
	if err := g.getJSON(ctx, "/risk_config", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (g *HTTPArbitrageGateway) Inventory(ctx context.Context) (models.InventoryView, error) {
	var raw models.InventoryView
	if err := g.getJSON(ctx, "/inventory", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (g *HTTPArbitrageGateway) Executions(ctx context.Context) ([]models.ExecutionRecord, error) {
	var records []models.ExecutionRecord
	if err := g.getJSON(ctx, "/executions", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (g *HTTPArbitrageGateway) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    g.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

func (g *HTTPArbitrageGateway) getJSON(ctx context.Context, path string, dest interface{}) error {
	err := g.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    g.baseURL + path,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

var _ domsvc.ArbitrageGateway = (*HTTPArbitrageGateway)(nil)
