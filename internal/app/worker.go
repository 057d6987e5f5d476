package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"leavedesk/internal/balance"
	"leavedesk/internal/leaverequest"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/messaging/kafka/producer"
	"leavedesk/internal/scheduler"
	"leavedesk/internal/shared/connection"
	"leavedesk/internal/shared/counter"
	"leavedesk/internal/user"

	"go.uber.org/zap"
)

// RunWorker hosts the two background loops: the outbox relay that drains
// pending notification events to Kafka, and the grace-period sweep that
// auto-approves requests no manager has decided in time.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	balanceRepo := balance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	leaveRequestService := leaverequest.NewService(
		sqlDB, leaveRequestRepo, balanceRepo, userRepo, counterRepo, outboxRepo, redisClient,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go scheduler.RunAutoApproveSweep(
		ctx,
		sweepConfigFromEnv(),
		leaveRequestRepo,
		leaveRequestService,
		logger,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func sweepConfigFromEnv() scheduler.Config {
	cfg := scheduler.Config{}
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SweepInterval = d
		}
	}
	if v := os.Getenv("GRACE_PERIOD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.GracePeriod = d
		}
	}
	if v := os.Getenv("SWEEP_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BatchSize = n
		}
	}
	return cfg
}
