package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"leavedesk/internal/events"
	"leavedesk/internal/messaging/kafka/consumer"
	"leavedesk/internal/notification"
	"leavedesk/internal/shared/connection"

	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := connection.NewKafkaReader(
		kafkaBroker,
		events.LeaveNotificationsTopic,
		"leavedesk-notifications",
	)
	defer reader.Close()

	var gateway notification.Gateway
	if host := os.Getenv("SMTP_HOST"); host != "" {
		gateway = notification.NewSMTPGateway(notification.SMTPConfig{
			Host:     host,
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		})
	} else {
		// No mail server configured; deliveries land in the log.
		gateway = notification.NewLogGateway()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveNotifications(ctx, reader, gateway, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
