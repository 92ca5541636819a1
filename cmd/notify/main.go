package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"massbook/internal/notifications/events"
	"massbook/internal/notifications/mailer"
	"massbook/internal/notifications/worker"
	"massbook/pkg/config"
	"massbook/pkg/kafka"
	kafka_config "massbook/pkg/kafka/config"
)

const ServiceName = "notify"

func main() {
	cfg := config.Load(ServiceName)

	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.Log)
	w := worker.New(m, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		events.TopicBookingPaid,
		worker.ConsumerGroupID,
		w.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
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

	cfg.Log.Info("Starting notification worker", "topic", events.TopicBookingPaid)
	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notification worker stopped")
}
