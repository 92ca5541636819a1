package worker

import (
	"context"
	"fmt"

	"massbook/internal/notifications/events"
	"massbook/internal/notifications/mailer"
	"massbook/pkg/kafka"
	"massbook/pkg/logger"
)

const ConsumerGroupID = "notifications-worker"

// Worker consumes booking.paid events and sends confirmation emails.
type Worker struct {
	mailer *mailer.Mailer
	log    *logger.Logger
}

func New(m *mailer.Mailer, log *logger.Logger) *Worker {
	return &Worker{mailer: m, log: log}
}

// Handle implements kafka.MessageHandler. Decode failures are returned so
// they surface in the consumer log; the offset is still committed since a
// malformed event will never become readable.
func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	if et := msg.GetEventType(); et != "" && et != events.EventTypeBookingPaid {
		w.log.Debug("Skipping event", "event_type", et, "event_id", msg.GetEventID())
		return nil
	}

	var ev events.BookingPaid
	if err := msg.DecodeValue(&ev); err != nil {
		return fmt.Errorf("decoding booking paid event %s: %w", msg.GetEventID(), err)
	}

	if ev.Email == "" {
		w.log.Warn("Booking paid event without email", "booking_id", ev.BookingID)
		return nil
	}

	if err := w.mailer.SendPaymentConfirmation(ctx, &ev); err != nil {
		return fmt.Errorf("booking %s: %w", ev.BookingID, err)
	}
	return nil
}
