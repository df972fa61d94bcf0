package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/medstock/medstock/kafka"
	"github.com/medstock/medstock/pkg/logger"
)

// Tails expiry alert events from Kafka and logs them. Useful for verifying
// the notification pipeline without an SMS gateway attached.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "medstock-alerts")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "medstock-alerts")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicExpiryAlert})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeExpiryAlert, func(ctx context.Context, event kafka.ExpiryAlertEvent) error {
		logger.Info(ctx).
			Str("event_id", event.EventID).
			Uint("medicinal_id", event.MedicinalID).
			Str("name", event.Name).
			Str("batch_number", event.BatchNumber).
			Str("category", event.Category).
			Str("validity", event.Validity).
			Str("band", event.Band).
			Msg("Expiry alert received")
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down alert consumer...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
