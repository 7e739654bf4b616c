package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/internal/availability/repository"
	"slotbook/internal/availability/validator"
	"slotbook/internal/feed"
	"slotbook/pkg/config"
	"slotbook/pkg/kafka"
	kafkaconfig "slotbook/pkg/kafka/config"
)

const ServiceName = "feed"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting reservation feed ingester")
	cfg.SetMongo()

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	reservationRepo := repository.NewMongoReservationRepository(cfg)
	ingestor := feed.NewIngestor(
		reservationRepo,
		validator.NewAvailabilityValidator(cfg.Formats, cfg.Log),
		cfg,
	)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.Log,
		cfg.ReservationFeedTopic,
		cfg.ReservationFeedGroupID,
		cfg.ReservationFeedDLQ,
		ingestor.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create feed consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Consuming reservation feed",
		"topic", cfg.ReservationFeedTopic,
		"group_id", cfg.ReservationFeedGroupID,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Feed consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Warn("Failed to close feed consumer", "error", err)
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	cfg.Client.Close(closeCtx, cfg.Log)

	cfg.Log.Info("Feed ingester stopped")
}
