package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/peter9889466/midori-view-sub000/internal/application/service"
	"github.com/peter9889466/midori-view-sub000/internal/cache"
	"github.com/peter9889466/midori-view-sub000/internal/config"
	"github.com/peter9889466/midori-view-sub000/internal/httpapi"
	postgres "github.com/peter9889466/midori-view-sub000/internal/infrastructure/database"
	"github.com/peter9889466/midori-view-sub000/internal/infrastructure/tradeapi"
	"github.com/peter9889466/midori-view-sub000/internal/kafka"
	"github.com/peter9889466/midori-view-sub000/internal/observability"
	"github.com/peter9889466/midori-view-sub000/internal/pkg/pacer"
	"github.com/peter9889466/midori-view-sub000/internal/pkg/retry"
)

func main() {
	cfg := config.Load()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("bad database config", zap.Error(err))
	}
	defer pool.Close()

	if err := retry.Do(ctx, cfg.Retry, func() error { return pool.Ping(ctx) }); err != nil {
		logger.Fatal("database unreachable", zap.Error(err))
	}

	repo := postgres.NewTradeRepository(pool, cfg.Tables.Schema, cfg.Tables.Record)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema setup failed", zap.Error(err))
	}

	periodCache, err := cache.New(cfg.CacheCap)
	if err != nil {
		logger.Fatal("cache setup failed", zap.Error(err))
	}
	periodCache.Warm(ctx, repo)

	client, err := tradeapi.New(tradeapi.Config{
		BaseURL:    cfg.API.BaseURL,
		ServiceKey: cfg.API.Key,
		Timeout:    cfg.API.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("trade api setup failed", zap.Error(err))
	}

	metrics := observability.NewInmem(256)

	svc := service.NewService(
		periodCache,
		repo,
		client,
		pacer.NewFixedDelay(cfg.API.Delay),
		logger,
		metrics,
	)

	server := httpapi.New(svc, logger, metrics)

	if cfg.KafkaEnabled() {
		if err := kafka.EnsureTopic(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, 1, 1, logger); err != nil {
			logger.Warn("refresh topic not ready", zap.Error(err))
		}
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.Group,
			Topic:   cfg.Kafka.Topic,
		})
		defer reader.Close()

		handler := kafka.NewRefreshHandler(svc, logger, metrics)
		consumer := kafka.NewConsumer(handler, reader, cfg.Kafka.Workers, logger)
		go consumer.Start(ctx)
	}

	logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("LOG_DEV") != "" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
