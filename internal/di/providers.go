package di

import (
	"context"
	"fmt"
	"time"

	domrepo "github.com/Manzely360/3omla-cloud-sub001/internal/domain/repository"
	domsvc "github.com/Manzely360/3omla-cloud-sub001/internal/domain/service"
	"github.com/Manzely360/3omla-cloud-sub001/internal/gate"
	"github.com/Manzely360/3omla-cloud-sub001/internal/handler/api"
	"github.com/Manzely360/3omla-cloud-sub001/internal/notify"
	"github.com/Manzely360/3omla-cloud-sub001/internal/orchestrator"
	internalrepo "github.com/Manzely360/3omla-cloud-sub001/internal/repository"
	"github.com/Manzely360/3omla-cloud-sub001/internal/services/analytics"
	"github.com/Manzely360/3omla-cloud-sub001/internal/services/arbitrage"
	"github.com/Manzely360/3omla-cloud-sub001/internal/services/trading"
	"github.com/Manzely360/3omla-cloud-sub001/internal/usecase"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/cache"
	pkgch "github.com/Manzely360/3omla-cloud-sub001/pkg/clickhouse"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
	pkgkafka "github.com/Manzely360/3omla-cloud-sub001/pkg/kafka"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/metrics"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideGateStore picks the durable store backing the feature gate: Redis
// when configured, in-process memory otherwise.
func ProvideGateStore(cfg *config.Config) (cache.Service, error) {
	if !cfg.Gate.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	store, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Gate.Redis.Host),
		cache.WithRedisPort(cfg.Gate.Redis.Port),
		cache.WithRedisPassword(cfg.Gate.Redis.Password),
		cache.WithRedisDB(cfg.Gate.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("gate store: %w", err)
	}
	return store, nil
}

// ProvideFeatureGate creates the one-shot feature gate.
func ProvideFeatureGate(store cache.Service, cfg *config.Config, logger *applogger.Logger, m domrepo.Metrics) *gate.FeatureGate {
	return gate.New(store, cfg.Gate.Namespace, logger, m)
}

// ProvideLeadLagSource creates the analytics client.
func ProvideLeadLagSource(cfg *config.Config) domsvc.LeadLagSource {
	return analytics.NewHTTPLeadLagSource(cfg)
}

// ProvideOrderGateway creates the trading client.
func ProvideOrderGateway(cfg *config.Config) domsvc.OrderGateway {
	return trading.NewHTTPOrderGateway(cfg)
}

// ProvideArbitrageGateway creates the arbitrage client.
func ProvideArbitrageGateway(cfg *config.Config) domsvc.ArbitrageGateway {
	return arbitrage.NewHTTPArbitrageGateway(cfg)
}

// ProvideHub creates the websocket notification hub.
func ProvideHub(logger *applogger.Logger) *notify.Hub {
	return notify.NewHub(logger)
}

// ProvideNotificationSink exposes the hub as the orchestrator's sink.
func ProvideNotificationSink(hub *notify.Hub) domsvc.NotificationSink {
	return hub
}

// ProvideClickHouseClient creates the journal backend, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.Journal.Host),
		pkgch.WithPort(cfg.Journal.Port),
		pkgch.WithDatabase(cfg.Journal.Database),
		pkgch.WithCredentials(cfg.Journal.User, cfg.Journal.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.Journal.DialTimeout, cfg.Journal.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideJournal creates the execution journal over ClickHouse, initializing
// its schema. Returns nil (journaling off) when there is no client.
func ProvideJournal(client *pkgch.Client, cfg *config.Config) (domrepo.Journal, error) {
	if client == nil {
		return nil, nil
	}
	journal := internalrepo.NewClickHouseJournal(client.DB(), cfg.Journal.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, journal.Schema()); err != nil {
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return journal, nil
}

// ProvideKafkaProducer creates the audit producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Audit.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Brokers),
		pkgkafka.WithCompression(cfg.Audit.Compression),
		pkgkafka.WithRequiredAcks(cfg.Audit.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Audit.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Audit.WriteTimeout, 0),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAuditTrail creates the Kafka audit trail, or nil when disabled.
func ProvideAuditTrail(producer *pkgkafka.Producer, cfg *config.Config) domrepo.AuditTrail {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAuditTrail(producer, cfg.Audit.Topic)
}

// ProvideCollector creates the lead-lag snapshot poller.
func ProvideCollector(source domsvc.LeadLagSource, m domrepo.Metrics, cfg *config.Config, logger *applogger.Logger) *usecase.LeadLagCollector {
	return usecase.NewLeadLagCollector(source, m, cfg.Analytics.PollInterval, logger)
}

// ProvideCockpit creates the ranked read side.
func ProvideCockpit(collector *usecase.LeadLagCollector) *usecase.Cockpit {
	return usecase.NewCockpit(collector)
}

// ProvideSessions creates the per-client order workflow sessions.
func ProvideSessions(
	g *gate.FeatureGate,
	gateway domsvc.OrderGateway,
	sink domsvc.NotificationSink,
	journal domrepo.Journal,
	audit domrepo.AuditTrail,
	m domrepo.Metrics,
	logger *applogger.Logger,
) *orchestrator.SessionManager {
	return orchestrator.NewSessionManager(g, gateway, sink, journal, audit, m, logger)
}

// ProvideArbitrageDesk creates the evaluate/execute workflow.
func ProvideArbitrageDesk(
	gateway domsvc.ArbitrageGateway,
	sink domsvc.NotificationSink,
	journal domrepo.Journal,
	m domrepo.Metrics,
	logger *applogger.Logger,
) *orchestrator.ArbitrageDesk {
	return orchestrator.NewArbitrageDesk(gateway, sink, journal, m, logger)
}

// ProvideHandler creates the HTTP surface.
func ProvideHandler(
	logger *applogger.Logger,
	cockpit *usecase.Cockpit,
	sessions *orchestrator.SessionManager,
	desk *orchestrator.ArbitrageDesk,
	g *gate.FeatureGate,
	arb domsvc.ArbitrageGateway,
	hub *notify.Hub,
) *api.CockpitHandler {
	return api.NewCockpitHandler(logger, cockpit, sessions, desk, g, arb, hub)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.LeadLagCollector,
	handler *api.CockpitHandler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, logger, collector, handler, chClient, producer)
}
