package notifications

import (
	"context"

	"massbook/internal/notifications/events"
	"massbook/internal/notifications/mailer"
	"massbook/pkg/kafka"
	"massbook/pkg/logger"
	"massbook/pkg/model"
)

// Dispatcher fans out the side effects of a booking becoming paid.
type Dispatcher interface {
	BookingPaid(ctx context.Context, booking *model.Booking) error
}

// KafkaDispatcher publishes booking.paid events for the notification worker
// to pick up.
type KafkaDispatcher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaDispatcher(producer *kafka.Producer, log *logger.Logger) *KafkaDispatcher {
	return &KafkaDispatcher{producer: producer, log: log}
}

func (d *KafkaDispatcher) BookingPaid(ctx context.Context, booking *model.Booking) error {
	msg := kafka.NewMessage().
		WithKey(booking.ID).
		WithValue(events.FromBooking(booking)).
		WithEventType(events.EventTypeBookingPaid).
		WithSource(events.Source).
		Build()

	if err := d.producer.Publish(ctx, msg); err != nil {
		return err
	}

	d.log.Info("Published booking paid event",
		"booking_id", booking.ID,
		"event_id", msg.GetEventID(),
	)
	return nil
}

// MailDispatcher sends the confirmation email directly, for deployments
// without a broker.
type MailDispatcher struct {
	mailer *mailer.Mailer
}

func NewMailDispatcher(m *mailer.Mailer) *MailDispatcher {
	return &MailDispatcher{mailer: m}
}

func (d *MailDispatcher) BookingPaid(ctx context.Context, booking *model.Booking) error {
	return d.mailer.SendPaymentConfirmation(ctx, events.FromBooking(booking))
}
