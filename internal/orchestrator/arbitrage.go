package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
)

// ErrNotEvaluated is returned by Execute when the tuple has no EXECUTE
// decision on record.
var ErrNotEvaluated = errors.New("arbitrage: latest evaluation did not approve execution")

// tupleKey identifies one (opportunity, size) evaluation slot. Each slot owns
// its evaluation state independently; sizes never share.
type tupleKey struct {
	symbol    string
	buyVenue  string
	sellVenue string
	sizeQuote float64
}

type tupleState struct {
	evaluation *models.EvaluationResult
	receipt    *models.ExecutionReceipt
	evaluated  time.Time
}

// ArbitrageDesk runs the evaluate/execute workflow. Evaluation is gate-free
// (read-only, no funds at risk) and may run concurrently for several sizes of
// the same opportunity. Execution is evaluation-gated, not quota-gated: the
// only key it needs is an EXECUTE decision for that exact tuple.
type ArbitrageDesk struct {
	mu     sync.Mutex
	tuples map[tupleKey]*tupleState

	gateway domsvc.ArbitrageGateway
	sink    domsvc.NotificationSink
	journal repository.Journal
	metrics repository.Metrics
	logger  *applogger.Logger
}

// NewArbitrageDesk creates a desk. journal and metrics may be nil.
func NewArbitrageDesk(
	gateway domsvc.ArbitrageGateway,
	sink domsvc.NotificationSink,
	journal repository.Journal,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *ArbitrageDesk {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &ArbitrageDesk{
		tuples:  make(map[tupleKey]*tupleState),
		gateway: gateway,
		sink:    sink,
		journal: journal,
		metrics: metrics,
		logger:  logger,
	}
}

func keyFor(opp *models.ArbitrageOpportunity, sizeQuote float64) tupleKey {
	return tupleKey{
		symbol:    opp.Symbol,
		buyVenue:  opp.BuyVenue,
		sellVenue: opp.SellVenue,
		sizeQuote: sizeQuote,
	}
}

// Evaluate asks the arbitrage service for a fresh verdict on (opportunity,
// size) and stores it as the tuple's latest evaluation.
func (d *ArbitrageDesk) Evaluate(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64) (*models.EvaluationResult, error) {
	if opp == nil || opp.Symbol == "" {
		return nil, errors.New("arbitrage: opportunity is required")
	}
	if sizeQuote <= 0 {
		return nil, errors.New("arbitrage: size must be greater than zero")
	}

	result, err := d.gateway.Evaluate(ctx, opp, sizeQuote)
	if err != nil {
		if d.metrics != nil {
			d.metrics.RecordError("arb_evaluate")
		}
		return nil, fmt.Errorf("evaluate %s: %w", opp.Symbol, err)
	}

	d.mu.Lock()
	d.tuples[keyFor(opp, sizeQuote)] = &tupleState{
		evaluation: result,
		evaluated:  time.Now(),
	}
	d.mu.Unlock()

	if d.metrics != nil {
		d.metrics.RecordEvaluation(result.Decision)
	}
	return result, nil
}

// Evaluation returns the latest stored evaluation for the tuple, or nil.
func (d *ArbitrageDesk) Evaluation(opp *models.ArbitrageOpportunity, sizeQuote float64) *models.EvaluationResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st, ok := d.tuples[keyFor(opp, sizeQuote)]; ok {
		return st.evaluation
	}
	return nil
}

// Execute submits the tuple for execution. Allowed only when the most recent
// evaluation for this exact tuple decided EXECUTE.
func (d *ArbitrageDesk) Execute(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64) (*models.ExecutionReceipt, error) {
	if opp == nil || opp.Symbol == "" {
		return nil, errors.New("arbitrage: opportunity is required")
	}

	key := keyFor(opp, sizeQuote)
	d.mu.Lock()
	st, ok := d.tuples[key]
	approved := ok && st.evaluation != nil && st.evaluation.Decision == models.DecisionExecute
	d.mu.Unlock()
	if !approved {
		return nil, ErrNotEvaluated
	}

	receipt, err := d.gateway.Execute(ctx, opp, sizeQuote)
	if err != nil {
		if d.metrics != nil {
			d.metrics.RecordError("arb_execute")
		}
		d.notify(&models.Feedback{
			Status:  models.FeedbackError,
			Message: fmt.Sprintf("execution failed for %s", opp.Symbol),
			At:      time.Now(),
		})
		return nil, fmt.Errorf("execute %s: %w", opp.Symbol, err)
	}

	d.mu.Lock()
	st, ok = d.tuples[key]
	if ok {
		st.receipt = receipt
	}
	d.mu.Unlock()

	d.record(ctx, opp, sizeQuote, receipt)
	d.notify(&models.Feedback{
		Status:  models.FeedbackSuccess,
		Message: fmt.Sprintf("executed %s: buy %s / sell %s", opp.Symbol, receipt.BuyOrderID, receipt.SellOrderID),
		At:      time.Now(),
	})
	return receipt, nil
}

func (d *ArbitrageDesk) notify(fb *models.Feedback) {
	if d.sink != nil {
		d.sink.Notify("arbitrage", fb)
	}
}

func (d *ArbitrageDesk) record(ctx context.Context, opp *models.ArbitrageOpportunity, sizeQuote float64, receipt *models.ExecutionReceipt) {
	if d.journal == nil {
		return
	}
	entry := &repository.ArbJournalEntry{
		Symbol:         opp.Symbol,
		BuyVenue:       opp.BuyVenue,
		SellVenue:      opp.SellVenue,
		SizeQuote:      sizeQuote,
		Status:         receipt.Status,
		BuyOrderID:     receipt.BuyOrderID,
		SellOrderID:    receipt.SellOrderID,
		RequestedQuote: receipt.RequestedQuote,
		At:             time.Now(),
	}
	if err := d.journal.RecordArbExecution(ctx, entry); err != nil {
		d.logger.Warn("arbitrage journal write failed", applogger.Error(err))
	}
}
