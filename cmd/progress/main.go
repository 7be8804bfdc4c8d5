package main

import (
	"canteen/internal/progress/handler"
	"canteen/internal/progress/repository"
	"canteen/internal/progress/service"
	"canteen/pkg/app"
	"canteen/pkg/auth"
	"canteen/pkg/bookingref"
	"canteen/pkg/config"
)

const ServiceName = "progress"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Progress service")
	progressService := initServices(cfg)
	serverApp := app.NewApplication(cfg, handler.NewProgressHandler(progressService, cfg.Log), app.Options{
		Verifier: auth.NewVerifier(cfg.JWTSecret),
	})
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ProgressService {
	codec := bookingref.New(
		[]byte(cfg.BookingRefHashKey),
		[]byte(cfg.BookingRefBlockKey),
		cfg.BookingRefMaxAge,
		cfg.BookingRefAcceptLegacy,
	)
	progressRepo := repository.NewMongoProgressRepository(cfg)
	progressService := service.NewProgressService(progressRepo, codec, cfg)

	cfg.Log.Info("Progress service initialized", "database", cfg.MongoDatabaseName)
	return progressService
}
