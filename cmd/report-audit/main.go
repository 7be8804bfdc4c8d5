package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"canteen/internal/audit/handler"
	"canteen/internal/audit/repository"
	"canteen/internal/reports/validator"
	"canteen/pkg/config"
	"canteen/pkg/kafka"
	kafkamw "canteen/pkg/kafka/middleware"
)

const ServiceName = "report-audit"

func main() {
	cfg := config.LoadWorker(ServiceName)
	if !cfg.KafkaEnabled {
		cfg.Log.Fatal("Report audit requires Kafka, set KAFKA_ENABLED=true")
	}
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	auditHandler := handler.NewReportAuditHandler(
		repository.NewMongoAuditRepository(cfg),
		validator.NewReportValidator(),
		cfg.Log,
	)

	consumer, err := kafka.NewConsumer(
		cfg.Kafka,
		cfg.ReportEventsTopic,
		cfg.ReportAuditGroup,
		cfg.ReportEventsDLQ,
		auditHandler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafkamw.NewMetrics()
	if cfg.Kafka.EnableMiddleware {
		consumer.Use(kafkamw.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting report audit consumer",
		"topic", cfg.ReportEventsTopic,
		"group", cfg.ReportAuditGroup,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Report audit consumer stopped", metrics.Snapshot().LogAttrs()...)
}
