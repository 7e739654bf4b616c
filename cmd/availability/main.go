package main

import (
	"context"
	"time"

	"slotbook/internal/availability/handler"
	"slotbook/internal/availability/repository"
	"slotbook/internal/availability/service"
	"slotbook/internal/availability/validator"
	"slotbook/pkg/app"
	"slotbook/pkg/config"
	"slotbook/pkg/kafka"
	kafkaconfig "slotbook/pkg/kafka/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Availability service")
	cfg.SetMongo()

	availabilityService, reservationService, producer := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewRouter(
		handler.NewAvailabilityHandler(availabilityService, cfg.Log),
		handler.NewReservationHandler(reservationService, cfg.Log),
	))
	serverApp.OnShutdown(func() {
		if producer != nil {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cfg.Client.Close(ctx, cfg.Log)
	})
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.AvailabilityService, service.ReservationService, *kafka.Producer) {
	availabilityValidator := validator.NewAvailabilityValidator(cfg.Formats, cfg.Log)
	reservationRepo := repository.NewMongoReservationRepository(cfg)

	// Events are best effort; without brokers the service runs without them.
	var producer *kafka.Producer
	var publisher service.EventPublisher
	if kafkaCfg, err := kafkaconfig.Load(); err != nil {
		cfg.Log.Warn("Kafka disabled, reservation events will not be published", "error", err)
	} else {
		producer, err = kafka.NewProducer(kafkaCfg, cfg.ReservationEventsTopic, "")
		if err != nil {
			cfg.Log.Warn("Kafka disabled, reservation events will not be published", "error", err)
		} else {
			publisher = producer
		}
	}

	availabilityService := service.NewAvailabilityService(reservationRepo, availabilityValidator, cfg)
	reservationService := service.NewReservationService(reservationRepo, availabilityValidator, publisher, cfg)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService, reservationService, producer
}
