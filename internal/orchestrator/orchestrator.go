// Package orchestrator turns a selected lead-lag pair or arbitrage
// opportunity into a validated, gated, submitted request, and collapses every
// outcome into a single feedback value for the cockpit page.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/internal/gate"
	xhttp "github.com/Manzely360/3omla-cloud-sub001/pkg/http"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
)

// State is the per-submission lifecycle.
type State string

const (
	StateIdle        State = "idle"
	StateConfiguring State = "configuring"
	StateSubmitting  State = "submitting"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Feature keys for the gated escalations.
const (
	FeatureTradeCreator = "trade_creator"
	FeatureAutoPilot    = "auto_pilot"
)

// ClientFeatureKey scopes a feature key to one client, so every visitor owns
// their own one-shot allowance.
func ClientFeatureKey(feature, clientID string) string {
	if clientID == "" {
		return feature
	}
	return feature + ":" + clientID
}

const msgCreateAccount = "create an account to continue"
const msgGenericFailure = "order submission failed, please try again"

// Config holds the user-editable submission fields, seeded from the selected
// target.
type Config struct {
	Symbol   string  `json:"symbol"`
	Exchange string  `json:"exchange"`
	Side     string  `json:"side"`
	Quantity float64 `json:"quantity"`
	Leverage float64 `json:"leverage"`
	Mode     string  `json:"mode"`
}

// OrderOrchestrator owns one client's submission workflow, one submission at
// a time. Selecting a new target resets it; an in-flight submission for a
// previous target finishes quietly without touching the new one.
type OrderOrchestrator struct {
	client string

	mu       sync.Mutex
	state    State
	config   Config
	feedback *models.Feedback
	target   *models.LeadLagPair

	// generation fences stale completions after a target switch
	generation uint64

	// autopilot, once granted, pins mode to live for the session
	autopilot bool

	gate    *gate.FeatureGate
	gateway domsvc.OrderGateway
	sink    domsvc.NotificationSink
	journal repository.Journal
	audit   repository.AuditTrail
	metrics repository.Metrics
	logger  *applogger.Logger
}

// New creates an orchestrator for one client. Gate keys are scoped by the
// client id. journal, audit and metrics may be nil; sink may be nil (feedback
// is then only readable via Feedback()).
func New(
	clientID string,
	g *gate.FeatureGate,
	gateway domsvc.OrderGateway,
	sink domsvc.NotificationSink,
	journal repository.Journal,
	audit repository.AuditTrail,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *OrderOrchestrator {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &OrderOrchestrator{
		client:  clientID,
		state:   StateIdle,
		gate:    g,
		gateway: gateway,
		sink:    sink,
		journal: journal,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
	}
}

// SelectTarget resets the configuration to defaults for the new pair and
// clears any prior feedback. Runs synchronously so stale feedback never leaks
// across target switches.
func (o *OrderOrchestrator) SelectTarget(pair *models.LeadLagPair) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.target = pair
	o.feedback = nil
	o.state = StateConfiguring
	o.config = defaultsFor(pair)
	if o.autopilot {
		o.config.Mode = models.ModeLive
	}
}

func defaultsFor(pair *models.LeadLagPair) Config {
	cfg := Config{
		Side:     models.SideBuy,
		Quantity: 0,
		Leverage: 1,
		Mode:     models.ModePaper,
	}
	if pair == nil {
		return cfg
	}
	cfg.Symbol = pair.FollowerSymbol
	if pair.MoveProjection != nil && pair.MoveProjection.ExpectedFollowerMove < 0 {
		cfg.Side = models.SideSell
	}
	return cfg
}

// SetQuantity updates the configured quantity.
func (o *OrderOrchestrator) SetQuantity(q float64) {
	o.mu.Lock()
	o.config.Quantity = q
	o.mu.Unlock()
}

// SetSide updates the configured side.
func (o *OrderOrchestrator) SetSide(side string) {
	o.mu.Lock()
	o.config.Side = side
	o.mu.Unlock()
}

// SetMode updates the configured mode. Once auto-pilot has been granted the
// mode is pinned to live; switching back to paper is refused.
func (o *OrderOrchestrator) SetMode(mode string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.autopilot && mode == models.ModePaper {
		return errors.New("auto-pilot is active, paper mode is disabled for this session")
	}
	o.config.Mode = mode
	return nil
}

// Dismiss drops the configuration view. It never cancels an in-flight
// submission; the network call runs to completion and its feedback lands via
// the sink if anyone still listens.
func (o *OrderOrchestrator) Dismiss() {
	o.mu.Lock()
	if o.state == StateConfiguring {
		o.state = StateIdle
		o.target = nil
	}
	o.mu.Unlock()
}

// State returns the current lifecycle state.
func (o *OrderOrchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Feedback returns the latest feedback, or nil.
func (o *OrderOrchestrator) Feedback() *models.Feedback {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.feedback
}

// ConfigSnapshot returns a copy of the current configuration.
func (o *OrderOrchestrator) ConfigSnapshot() Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.config
}

// AutoPilot reports whether auto-pilot has been granted this session.
func (o *OrderOrchestrator) AutoPilot() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.autopilot
}

// Submit validates the request, spends the client's one-shot gate, and
// submits the order. Validation failures never touch the gate; a locked gate
// never touches the network. The returned feedback is also pushed to the
// sink.
func (o *OrderOrchestrator) Submit(ctx context.Context, req *models.TradeRequest, bypass bool) *models.Feedback {
	o.mu.Lock()
	gen := o.generation
	o.mu.Unlock()

	if msg, ok := validateRequest(req); !ok {
		return o.fail(gen, req, msg, false)
	}

	if !o.gate.Consume(ctx, ClientFeatureKey(FeatureTradeCreator, o.client), bypass) {
		return o.fail(gen, req, msgCreateAccount, true)
	}

	o.mu.Lock()
	if o.generation == gen {
		o.state = StateSubmitting
	}
	o.mu.Unlock()

	err := o.gateway.CreateOrder(ctx, req)
	if err != nil {
		msg := msgGenericFailure
		var remote *xhttp.RemoteError
		if errors.As(err, &remote) && remote.Body != "" {
			msg = remote.Body
		}
		o.logger.Warn("order submission failed",
			applogger.String("symbol", req.Symbol), applogger.Error(err))
		if o.metrics != nil {
			o.metrics.RecordSubmission(req.Mode, "failed")
		}
		fb := o.complete(gen, StateFailed, &models.Feedback{
			Status:  models.FeedbackError,
			Message: msg,
			At:      time.Now(),
		})
		o.record(ctx, req, "failed", msg)
		return fb
	}

	if o.metrics != nil {
		o.metrics.RecordSubmission(req.Mode, "succeeded")
	}
	fb := o.complete(gen, StateSucceeded, &models.Feedback{
		Status:  models.FeedbackSuccess,
		Message: "order accepted",
		At:      time.Now(),
	})
	o.record(ctx, req, "succeeded", "")
	return fb
}

// EnableAutoPilot spends the client's auto-pilot gate key and, once granted,
// forces live mode for the rest of the session. Re-enabling in the same
// session is idempotent and does not spend the gate again.
func (o *OrderOrchestrator) EnableAutoPilot(ctx context.Context, bypass bool) *models.Feedback {
	o.mu.Lock()
	granted := o.autopilot
	o.mu.Unlock()
	if granted {
		return &models.Feedback{
			Status:  models.FeedbackSuccess,
			Message: "auto-pilot already active",
			At:      time.Now(),
		}
	}

	if !o.gate.Consume(ctx, ClientFeatureKey(FeatureAutoPilot, o.client), bypass) {
		fb := &models.Feedback{
			Status:        models.FeedbackError,
			Message:       msgCreateAccount,
			RequireSignup: true,
			At:            time.Now(),
		}
		o.notify("autopilot", fb)
		return fb
	}

	o.mu.Lock()
	o.autopilot = true
	o.config.Mode = models.ModeLive
	o.mu.Unlock()

	fb := &models.Feedback{
		Status:  models.FeedbackSuccess,
		Message: "auto-pilot enabled, orders will go live",
		At:      time.Now(),
	}
	o.notify("autopilot", fb)
	return fb
}

func validateRequest(req *models.TradeRequest) (string, bool) {
	if req == nil || req.Symbol == "" {
		return "select a pair before submitting", false
	}
	if req.Quantity <= 0 {
		return "quantity must be greater than zero", false
	}
	return "", true
}

// fail records a pre-network failure (validation or gate). Fenced the same
// way as complete: a target switched mid-call keeps its clean slate.
func (o *OrderOrchestrator) fail(gen uint64, req *models.TradeRequest, msg string, signup bool) *models.Feedback {
	fb := &models.Feedback{
		Status:        models.FeedbackError,
		Message:       msg,
		RequireSignup: signup,
		At:            time.Now(),
	}
	o.mu.Lock()
	if o.generation == gen {
		o.state = StateFailed
		o.feedback = fb
	}
	o.mu.Unlock()

	if o.metrics != nil {
		mode := models.ModePaper
		if req != nil && req.Mode != "" {
			mode = req.Mode
		}
		o.metrics.RecordSubmission(mode, "rejected")
	}
	o.notify("orders", fb)
	return fb
}

// complete applies the final state unless the target changed while the
// network call was in flight; a stale completion only notifies the sink.
func (o *OrderOrchestrator) complete(gen uint64, state State, fb *models.Feedback) *models.Feedback {
	o.mu.Lock()
	if o.generation == gen {
		o.state = state
		o.feedback = fb
	}
	o.mu.Unlock()
	o.notify("orders", fb)
	return fb
}

func (o *OrderOrchestrator) notify(topic string, fb *models.Feedback) {
	if o.sink != nil {
		o.sink.Notify(topic, fb)
	}
}

// record persists the outcome to the journal and audit trail. Both are
// best-effort; an unavailable backend never changes the submission result.
func (o *OrderOrchestrator) record(ctx context.Context, req *models.TradeRequest, outcome, msg string) {
	if o.journal != nil {
		entry := &repository.OrderJournalEntry{
			Symbol:   req.Symbol,
			Exchange: req.Exchange,
			Side:     req.Side,
			Quantity: req.Quantity,
			Mode:     req.Mode,
			Outcome:  outcome,
			Message:  msg,
			At:       time.Now(),
		}
		if err := o.journal.RecordOrder(ctx, entry); err != nil {
			o.logger.Warn("order journal write failed", applogger.Error(err))
		}
	}
	if o.audit != nil {
		event := map[string]interface{}{
			"kind":     "order",
			"symbol":   req.Symbol,
			"exchange": req.Exchange,
			"side":     req.Side,
			"quantity": req.Quantity,
			"mode":     req.Mode,
			"outcome":  outcome,
			"at":       time.Now().UTC(),
		}
		if err := o.audit.Publish(ctx, event); err != nil {
			o.logger.Warn("audit publish failed", applogger.Error(err))
		}
	}
}
