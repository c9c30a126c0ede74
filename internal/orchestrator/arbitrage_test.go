package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
)

type fakeArbGateway struct {
	mu        sync.Mutex
	decisions map[float64]string
	evalCalls int
	execCalls int
	execErr   error
}

func (f *fakeArbGateway) Evaluate(_ context.Context, _ *models.ArbitrageOpportunity, sizeQuote float64) (*models.EvaluationResult, error) {
	f.mu.Lock()
	f.evalCalls++
	decision, ok := f.decisions[sizeQuote]
	f.mu.Unlock()
	if !ok {
		decision = models.DecisionSkip
	}
	return &models.EvaluationResult{Decision: decision, NetPnlQuote: 1.25}, nil
}

func (f *fakeArbGateway) Execute(_ context.Context, _ *models.ArbitrageOpportunity, sizeQuote float64) (*models.ExecutionReceipt, error) {
	f.mu.Lock()
	f.execCalls++
	f.mu.Unlock()
	if f.execErr != nil {
		return nil, f.execErr
	}
	return &models.ExecutionReceipt{
		Status:         "submitted",
		BuyOrderID:     "buy-1",
		SellOrderID:    "sell-1",
		RequestedQuote: sizeQuote,
	}, nil
}

func (f *fakeArbGateway) Opportunities(_ context.Context) ([]models.ArbitrageOpportunity, error) {
	return nil, nil
}

func (f *fakeArbGateway) RiskConfig(_ context.Context) (models.RiskConfig, error) { return nil, nil }

func (f *fakeArbGateway) Inventory(_ context.Context) (models.InventoryView, error) { return nil, nil }

func (f *fakeArbGateway) Executions(_ context.Context) ([]models.ExecutionRecord, error) {
	return nil, nil
}

func testOpportunity() *models.ArbitrageOpportunity {
	return &models.ArbitrageOpportunity{
		Symbol:    "ETHUSDT",
		BuyVenue:  "kraken",
		SellVenue: "binance",
	}
}

func TestExecuteWithoutEvaluationIsRefused(t *testing.T) {
	gw := &fakeArbGateway{}
	desk := NewArbitrageDesk(gw, nil, nil, nil, nil)

	_, err := desk.Execute(context.Background(), testOpportunity(), 500)
	if !errors.Is(err, ErrNotEvaluated) {
		t.Fatalf("err = %v, want ErrNotEvaluated", err)
	}
	if gw.execCalls != 0 {
		t.Fatalf("gateway executed %d times, want 0", gw.execCalls)
	}
}

func TestExecuteAfterSkipIsRefused(t *testing.T) {
	gw := &fakeArbGateway{decisions: map[float64]string{500: models.DecisionSkip}}
	desk := NewArbitrageDesk(gw, nil, nil, nil, nil)
	ctx := context.Background()

	if _, err := desk.Evaluate(ctx, testOpportunity(), 500); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := desk.Execute(ctx, testOpportunity(), 500); !errors.Is(err, ErrNotEvaluated) {
		t.Fatalf("err = %v, want ErrNotEvaluated", err)
	}
}

func TestExecuteAfterApproval(t *testing.T) {
	gw := &fakeArbGateway{decisions: map[float64]string{500: models.DecisionExecute}}
	desk := NewArbitrageDesk(gw, nil, nil, nil, nil)
	ctx := context.Background()

	if _, err := desk.Evaluate(ctx, testOpportunity(), 500); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	receipt, err := desk.Execute(ctx, testOpportunity(), 500)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if receipt.RequestedQuote != 500 {
		t.Errorf("requested quote = %v, want 500", receipt.RequestedQuote)
	}
	if gw.execCalls != 1 {
		t.Errorf("execCalls = %d, want 1", gw.execCalls)
	}
}

func TestTuplesIsolatePerSize(t *testing.T) {
	gw := &fakeArbGateway{decisions: map[float64]string{
		500:  models.DecisionExecute,
		5000: models.DecisionSkip,
	}}
	desk := NewArbitrageDesk(gw, nil, nil, nil, nil)
	ctx := context.Background()

	opp := testOpportunity()
	if _, err := desk.Evaluate(ctx, opp, 500); err != nil {
		t.Fatalf("evaluate 500: %v", err)
	}
	if _, err := desk.Evaluate(ctx, opp, 5000); err != nil {
		t.Fatalf("evaluate 5000: %v", err)
	}

	// the approved size executes, the skipped size does not
	if _, err := desk.Execute(ctx, opp, 500); err != nil {
		t.Errorf("execute 500: %v", err)
	}
	if _, err := desk.Execute(ctx, opp, 5000); !errors.Is(err, ErrNotEvaluated) {
		t.Errorf("execute 5000: err = %v, want ErrNotEvaluated", err)
	}
}

func TestReEvaluationReplacesVerdict(t *testing.T) {
	gw := &fakeArbGateway{decisions: map[float64]string{500: models.DecisionExecute}}
	desk := NewArbitrageDesk(gw, nil, nil, nil, nil)
	ctx := context.Background()

	opp := testOpportunity()
	if _, err := desk.Evaluate(ctx, opp, 500); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	// book moved, the next pass says skip
	gw.mu.Lock()
	gw.decisions[500] = models.DecisionSkip
	gw.mu.Unlock()
	if _, err := desk.Evaluate(ctx, opp, 500); err != nil {
		t.Fatalf("re-evaluate: %v", err)
	}

	if _, err := desk.Execute(ctx, opp, 500); !errors.Is(err, ErrNotEvaluated) {
		t.Fatalf("stale approval must not execute, err = %v", err)
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	desk := NewArbitrageDesk(&fakeArbGateway{}, nil, nil, nil, nil)
	ctx := context.Background()

	if _, err := desk.Evaluate(ctx, nil, 500); err == nil {
		t.Errorf("nil opportunity should be rejected")
	}
	if _, err := desk.Evaluate(ctx, testOpportunity(), 0); err == nil {
		t.Errorf("zero size should be rejected")
	}
	if _, err := desk.Evaluate(ctx, testOpportunity(), -10); err == nil {
		t.Errorf("negative size should be rejected")
	}
}

func TestEvaluationGetter(t *testing.T) {
	gw := &fakeArbGateway{decisions: map[float64]string{500: models.DecisionExecute}}
	desk := NewArbitrageDesk(gw, nil, nil, nil, nil)
	ctx := context.Background()

	opp := testOpportunity()
	if got := desk.Evaluation(opp, 500); got != nil {
		t.Fatalf("expected nil before any evaluation, got %+v", got)
	}
	want, err := desk.Evaluate(ctx, opp, 500)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got := desk.Evaluation(opp, 500); got != want {
		t.Fatalf("getter returned %+v, want the stored result", got)
	}
	if got := desk.Evaluation(opp, 750); got != nil {
		t.Fatalf("different size must not share state, got %+v", got)
	}
}
