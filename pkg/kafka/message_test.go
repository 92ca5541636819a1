package kafka

import (
	"testing"
)

func TestMessageBuilderAssignsEventID(t *testing.T) {
	msg := NewMessage().
		WithKey("booking-1").
		WithValue(map[string]string{"bookingId": "booking-1"}).
		WithEventType("booking.paid.v1").
		WithSource("bookings-service").
		Build()

	if msg.GetEventID() == "" {
		t.Error("expected generated event id")
	}
	if msg.GetEventType() != "booking.paid.v1" {
		t.Errorf("unexpected event type %q", msg.GetEventType())
	}
	if msg.Headers[HeaderSource] != "bookings-service" {
		t.Errorf("unexpected source %q", msg.Headers[HeaderSource])
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("expected timestamp header")
	}
}

func TestMessageValueRoundTrip(t *testing.T) {
	type payload struct {
		BookingID string `json:"bookingId"`
		Amount    int64  `json:"amount"`
	}

	msg := NewMessage().
		WithKey("booking-1").
		WithValue(&payload{BookingID: "booking-1", Amount: 5000}).
		Build()

	var got payload
	if err := msg.DecodeValue(&got); err != nil {
		t.Fatalf("decoding value: %v", err)
	}
	if got.BookingID != "booking-1" || got.Amount != 5000 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
