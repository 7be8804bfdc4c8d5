package main

import (
	"canteen/internal/reports/handler"
	"canteen/internal/reports/render"
	"canteen/internal/reports/repository"
	"canteen/internal/reports/service"
	"canteen/internal/reports/validator"
	"canteen/pkg/app"
	"canteen/pkg/auth"
	"canteen/pkg/bookingref"
	"canteen/pkg/config"
	mongodb "canteen/pkg/db/mongo"
	"canteen/pkg/kafka"
	kafkamw "canteen/pkg/kafka/middleware"
)

const ServiceName = "reports"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reports service")
	publisher, producer := initPublisher(cfg)
	reportService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg, handler.NewReportHandler(reportService, cfg.Log), app.Options{
		Verifier:  auth.NewVerifier(cfg.JWTSecret),
		Roles:     handler.ServiceRoles,
		RateLimit: true,
	})
	if producer != nil {
		serverApp.OnShutdown(producer.Close)
	}
	serverApp.Run()
}

func initPublisher(cfg *config.Config) (service.ReportEventPublisher, *kafka.Producer) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, report events will not be published")
		return kafka.NopReportEvents{}, nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.ReportEventsTopic, cfg.ReportEventsDLQ, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafkamw.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafkamw.NewMetrics().ProducerMiddleware())
	}
	return kafka.NewReportEvents(producer, ServiceName), producer
}

func initServices(cfg *config.Config, publisher service.ReportEventPublisher) service.ReportService {
	codec := bookingref.New(
		[]byte(cfg.BookingRefHashKey),
		[]byte(cfg.BookingRefBlockKey),
		cfg.BookingRefMaxAge,
		cfg.BookingRefAcceptLegacy,
	)
	reader := mongodb.NewSnapshotReader(cfg.Client.Mongo, cfg.Log)
	reportRepo := repository.NewMongoReportRepository(cfg, reader)
	renderer := render.NewRenderer(
		render.Layout{
			PageHeight:     cfg.ReportPageHeight,
			CurrencySymbol: cfg.ReportCurrencySymbol,
			Location:       cfg.Location(),
		},
		render.NewSourceLoader(cfg.ReportWatermark, cfg.ReportFetchTimeout),
		cfg.Log,
	)
	reportService := service.NewReportService(
		reportRepo,
		renderer,
		codec,
		publisher,
		validator.NewReportValidator(),
		cfg,
	)

	cfg.Log.Info("Report service initialized",
		"database", cfg.MongoDatabaseName,
		"timezone", cfg.ReportTimezone,
		"kafka_enabled", cfg.KafkaEnabled,
	)
	return reportService
}
