package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	pkgch "github.com/Manzely360/3omla-cloud-sub001/pkg/clickhouse"
	"github.com/Manzely360/3omla-cloud-sub001/pkg/config"
	xhttp "github.com/Manzely360/3omla-cloud-sub001/pkg/http"
	pkgkafka "github.com/Manzely360/3omla-cloud-sub001/pkg/kafka"
	applogger "github.com/Manzely360/3omla-cloud-sub001/pkg/logger"
)

// collector is the lead-lag poller; kept as a small interface so the server
// package does not depend on internal packages.
type collector interface {
	Start(ctx context.Context) error
}

// App encapsulates the application lifecycle.
type App struct {
	cfg       *config.Config
	logger    *applogger.Logger
	collector collector
	handler   xhttp.Handler

	httpServer *xhttp.Server
	chClient   *pkgch.Client
	producer   *pkgkafka.Producer
}

// New creates a new App instance with all dependencies. chClient and producer
// may be nil when journaling/audit are disabled.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	c collector,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		collector: c,
		handler:   handler,
		chClient:  chClient,
		producer:  producer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	go func() {
		if err := a.collector.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("leadlag collector error", applogger.Error(err))
		}
	}()
	a.logger.Info("leadlag collector started",
		applogger.Duration("interval", a.cfg.Analytics.PollInterval),
		applogger.Strings("symbols", a.cfg.Analytics.Symbols))

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Error("clickhouse close error", applogger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.logger.Info("shutdown complete")
	return firstErr
}
