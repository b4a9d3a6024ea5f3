package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/didyoufeelit/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/didyoufeelit/internal/adapter/kafka"
	"github.com/couchcryptid/didyoufeelit/internal/adapter/usgs"
	"github.com/couchcryptid/didyoufeelit/internal/config"
	"github.com/couchcryptid/didyoufeelit/internal/observability"
	"github.com/couchcryptid/didyoufeelit/internal/screen"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := usgs.NewClient(cfg.USGSConnectTimeout, cfg.USGSReadTimeout, metrics, observability.Named(logger, "usgs"))

	// Optional publishing of the shown event (enabled via KAFKA_BROKERS).
	var sink screen.Sink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, observability.Named(logger, "kafka"))
		sink = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	labels := screen.NewLabels(screen.LabelSnapshot{})
	// stdout carries the structured log stream, so the labels go to stderr.
	display := screen.Displays(labels, screen.NewTerminalDisplay(os.Stderr))
	loop := screen.NewLoop(16)
	controller := screen.New(client, display, loop, sink, observability.Named(logger, "screen"), metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, controller, labels, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	loopCtx, stopLoop := context.WithCancel(context.Background())
	go loop.Run(loopCtx)

	controller.Start(ctx)

	if cfg.ExitAfterSettle {
		select {
		case <-controller.Settled():
		case <-ctx.Done():
		}
	} else {
		<-ctx.Done()
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	stopLoop()
	<-loop.Done()
	if writer != nil {
		select {
		case <-controller.Published():
		case <-shutdownCtx.Done():
			logger.Warn("publish still in flight at shutdown")
		}
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
