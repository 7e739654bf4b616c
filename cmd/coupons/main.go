package main

import (
	"context"
	"time"

	"slotbook/internal/coupons/handler"
	"slotbook/internal/coupons/repository"
	"slotbook/internal/coupons/service"
	"slotbook/internal/coupons/validator"
	"slotbook/pkg/app"
	"slotbook/pkg/config"
)

const ServiceName = "coupons"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.Log.Info("Starting Coupons service")
	cfg.SetMongo()

	couponService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCouponHandler(couponService, cfg.Log))
	serverApp.OnShutdown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cfg.Client.Close(ctx, cfg.Log)
	})
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CouponService {
	couponValidator := validator.NewCouponValidator(cfg.Formats, cfg.Log)
	couponRepo := repository.NewMongoCouponRepository(cfg)
	couponService := service.NewCouponService(couponRepo, couponValidator, cfg)

	cfg.Log.Info("Coupon service initialized", "database", cfg.MongoDatabaseName)
	return couponService
}
