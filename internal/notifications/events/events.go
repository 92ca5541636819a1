package events

import "massbook/pkg/model"

const (
	// TopicBookingPaid carries confirmation events for bookings that
	// transitioned to paid.
	TopicBookingPaid = "booking.paid"

	EventTypeBookingPaid = "booking.paid.v1"

	Source = "bookings-service"
)

// BookingPaid is the event payload published after a successful payment
// transition. It carries everything the notification worker needs so the
// consumer never has to read the store.
type BookingPaid struct {
	BookingID string `json:"bookingId"`
	RefID     string `json:"refId"`
	PaymentID string `json:"paymentId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Amount    int64  `json:"amount"`
	Time      string `json:"time,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

func FromBooking(b *model.Booking) *BookingPaid {
	return &BookingPaid{
		BookingID: b.ID,
		RefID:     b.RefID,
		PaymentID: b.PaymentID,
		Name:      b.Name,
		Email:     b.Email,
		Amount:    b.Amount,
		Time:      b.Time,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
	}
}
