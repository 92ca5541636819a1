package main

import (
	"massbook/internal/bookings/handler"
	"massbook/internal/bookings/repository"
	"massbook/internal/bookings/service"
	"massbook/internal/bookings/validator"
	"massbook/internal/notifications"
	"massbook/internal/notifications/events"
	"massbook/internal/notifications/mailer"
	"massbook/pkg/app"
	"massbook/pkg/config"
	"massbook/pkg/kafka"
	kafka_config "massbook/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		initDispatcher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initDispatcher(cfg *config.Config) notifications.Dispatcher {
	if cfg.KafkaEnabled {
		producer, err := kafka.NewProducer(kafka_config.Load(), events.TopicBookingPaid, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		cfg.Log.Info("Notifications dispatch via Kafka", "topic", events.TopicBookingPaid)
		return notifications.NewKafkaDispatcher(producer, cfg.Log)
	}

	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.Log)
	cfg.Log.Info("Notifications dispatch via SMTP", "host", cfg.SMTPHost)
	return notifications.NewMailDispatcher(m)
}
