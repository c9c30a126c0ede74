//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Gate
		ProvideGateStore,
		ProvideFeatureGate,

		// Remote service clients
		ProvideLeadLagSource,
		ProvideOrderGateway,
		ProvideArbitrageGateway,

		// Persistence and audit
		ProvideClickHouseClient,
		ProvideJournal,
		ProvideKafkaProducer,
		ProvideAuditTrail,

		// Notification
		ProvideHub,
		ProvideNotificationSink,

		// Use cases
		ProvideCollector,
		ProvideCockpit,
		ProvideSessions,
		ProvideArbitrageDesk,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
