package orchestrator

import (
	"sync"

	"github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/internal/gate"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
)

// SessionManager hands out one OrderOrchestrator per client id. Sessions are
// created on first use and live for the process lifetime; the durable gate
// state lives in the store, so a restart only loses in-memory config, not a
// spent allowance.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*OrderOrchestrator

	gate    *gate.FeatureGate
	gateway domsvc.OrderGateway
	sink    domsvc.NotificationSink
	journal repository.Journal
	audit   repository.AuditTrail
	metrics repository.Metrics
	logger  *applogger.Logger
}

func NewSessionManager(
	g *gate.FeatureGate,
	gateway domsvc.OrderGateway,
	sink domsvc.NotificationSink,
	journal repository.Journal,
	audit repository.AuditTrail,
	metrics repository.Metrics,
	logger *applogger.Logger,
) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*OrderOrchestrator),
		gate:     g,
		gateway:  gateway,
		sink:     sink,
		journal:  journal,
		audit:    audit,
		metrics:  metrics,
		logger:   logger,
	}
}

// Session returns the orchestrator owned by clientID, creating it on first
// use. Repeated calls with the same id return the same instance.
func (m *SessionManager) Session(clientID string) *OrderOrchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.sessions[clientID]; ok {
		return o
	}
	o := New(clientID, m.gate, m.gateway, m.sink, m.journal, m.audit, m.metrics, m.logger)
	m.sessions[clientID] = o
	return o
}
