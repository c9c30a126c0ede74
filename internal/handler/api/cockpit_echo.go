package api

import (
	"errors"
	"net/http"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/models"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/internal/gate"
	"github.com/Manzely360/3omla-cloud-sub001/internal/notify"
	"github.com/Manzely360/3omla-cloud-sub001/internal/orchestrator"
	"github.com/Manzely360/3omla-cloud-sub001/internal/ranking"
	"github.com/Manzely360/3omla-cloud-sub001/internal/usecase"
	xhttp "github.com/Manzely360/3omla-cloud-sub001/pkg/http"
	xlogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CockpitHandler exposes the cockpit surface to the hosted page. Gate and
// submission state are scoped per client id; every route that touches them
// requires one.
type CockpitHandler struct {
	logger   *xlogger.Logger
	cockpit  *usecase.Cockpit
	sessions *orchestrator.SessionManager
	desk     *orchestrator.ArbitrageDesk
	gate     *gate.FeatureGate
	arb      domsvc.ArbitrageGateway
	hub      *notify.Hub
}

func NewCockpitHandler(
	logger *xlogger.Logger,
	cockpit *usecase.Cockpit,
	sessions *orchestrator.SessionManager,
	desk *orchestrator.ArbitrageDesk,
	g *gate.FeatureGate,
	arb domsvc.ArbitrageGateway,
	hub *notify.Hub,
) *CockpitHandler {
	return &CockpitHandler{
		logger:   logger,
		cockpit:  cockpit,
		sessions: sessions,
		desk:     desk,
		gate:     g,
		arb:      arb,
		hub:      hub,
	}
}

func (h *CockpitHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/leadlag/groups", h.Groups)
	g.GET("/leadlag/top", h.Top)
	g.POST("/leadlag/select", h.SelectPair)
	g.GET("/order/config", h.OrderConfig)
	g.POST("/orders", h.CreateOrder)
	g.POST("/autopilot", h.AutoPilot)
	g.GET("/gate/:feature", h.GateCheck)
	g.POST("/arbitrage/evaluate", h.Evaluate)
	g.POST("/arbitrage/execute", h.Execute)
	g.GET("/arbitrage/opportunities", h.Opportunities)
	g.GET("/arbitrage/risk", h.RiskConfig)
	g.GET("/arbitrage/inventory", h.Inventory)
	g.GET("/arbitrage/executions", h.Executions)

	e.GET("/ws", h.hub.Handle)
}

// Groups returns pairs bucketed by interval, ranked within each bucket.
func (h *CockpitHandler) Groups(c echo.Context) error {
	groups, at := h.cockpit.Groups()
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"groups":     groups,
		"fetched_at": at,
	})
}

// Top returns the single best pair across all intervals.
func (h *CockpitHandler) Top(c echo.Context) error {
	top, at := h.cockpit.Top()
	if top == nil {
		return xhttp.NotFoundResponse(c, "no pairs in current snapshot")
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"pair":       top,
		"fetched_at": at,
	})
}

// SelectPair makes a snapshot pair the submission target and returns the
// seeded defaults.
func (h *CockpitHandler) SelectPair(c echo.Context) error {
	req := &models.SelectPairRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	pair := h.findPair(req)
	if pair == nil {
		return xhttp.NotFoundResponse(c, "pair not in current snapshot")
	}

	session := h.sessions.Session(req.ClientID)
	session.SelectTarget(pair)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"config":    session.ConfigSnapshot(),
		"lag_label": ranking.FormatLag(pair),
	})
}

// OrderConfig returns the client's current submission configuration and
// state.
func (h *CockpitHandler) OrderConfig(c echo.Context) error {
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		return xhttp.BadRequestResponse(c, "client_id is required")
	}
	session := h.sessions.Session(clientID)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"config":    session.ConfigSnapshot(),
		"state":     session.State(),
		"autopilot": session.AutoPilot(),
		"feedback":  session.Feedback(),
	})
}

// CreateOrder validates, gates and submits an order. The feedback value is
// always 200; its status field carries the outcome.
func (h *CockpitHandler) CreateOrder(c echo.Context) error {
	req := &models.CreateOrderRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	fb := h.sessions.Session(req.ClientID).Submit(c.Request().Context(), req.TradeRequest(), req.Authenticated)
	return xhttp.SuccessResponse(c, fb)
}

// AutoPilot escalates to live-mode auto-pilot behind the client's own gate
// key.
func (h *CockpitHandler) AutoPilot(c echo.Context) error {
	req := &models.AutoPilotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	fb := h.sessions.Session(req.ClientID).EnableAutoPilot(c.Request().Context(), req.Authenticated)
	return xhttp.SuccessResponse(c, fb)
}

// GateCheck reports whether a feature key is locked for this client.
func (h *CockpitHandler) GateCheck(c echo.Context) error {
	clientID := c.QueryParam("client_id")
	if clientID == "" {
		return xhttp.BadRequestResponse(c, "client_id is required")
	}
	feature := orchestrator.ClientFeatureKey(c.Param("feature"), clientID)
	bypass := c.QueryParam("authenticated") == "true"
	locked := h.gate.Check(c.Request().Context(), feature, bypass)
	return xhttp.SuccessResponse(c, map[string]bool{"locked": locked})
}

// Evaluate runs a gate-free evaluation for one (opportunity, size) tuple.
func (h *CockpitHandler) Evaluate(c echo.Context) error {
	req := &models.ArbActionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.desk.Evaluate(c.Request().Context(), &req.Opportunity, req.SizeQuote)
	if err != nil {
		h.logger.Error("arbitrage evaluate failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("evaluation failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, result)
}

// Execute submits an evaluated tuple for (simulated) execution.
func (h *CockpitHandler) Execute(c echo.Context) error {
	req := &models.ArbActionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	receipt, err := h.desk.Execute(c.Request().Context(), &req.Opportunity, req.SizeQuote)
	if err != nil {
		if errors.Is(err, orchestrator.ErrNotEvaluated) {
			return xhttp.DataResponse(c, http.StatusConflict, err.Error())
		}
		h.logger.Error("arbitrage execute failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("execution failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, receipt)
}

// Opportunities proxies the arbitrage service's opportunity snapshot.
func (h *CockpitHandler) Opportunities(c echo.Context) error {
	opps, err := h.arb.Opportunities(c.Request().Context())
	if err != nil {
		h.logger.Error("opportunities fetch failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("opportunities unavailable").WithError(err))
	}
	return xhttp.ListResponse(c, opps, int64(len(opps)))
}

func (h *CockpitHandler) RiskConfig(c echo.Context) error {
	raw, err := h.arb.RiskConfig(c.Request().Context())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("risk config unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, raw)
}

func (h *CockpitHandler) Inventory(c echo.Context) error {
	raw, err := h.arb.Inventory(c.Request().Context())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("inventory unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, raw)
}

func (h *CockpitHandler) Executions(c echo.Context) error {
	records, err := h.arb.Executions(c.Request().Context())
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("executions unavailable").WithError(err))
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

func (h *CockpitHandler) findPair(req *models.SelectPairRequest) *models.LeadLagPair {
	groups, _ := h.cockpit.Groups()
	for interval, bucket := range groups {
		if req.Interval != "" && interval != req.Interval {
			continue
		}
		for i := range bucket {
			p := bucket[i].LeadLagPair
			if p.LeaderSymbol == req.LeaderSymbol && p.FollowerSymbol == req.FollowerSymbol {
				return &p
			}
		}
	}
	return nil
}
