package mailer

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"massbook/internal/notifications/events"
	"massbook/pkg/logger"
)

// Mailer sends booking confirmation emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

func New(host string, port int, user, pass, from string, log *logger.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		log:    log,
	}
}

// SendPaymentConfirmation delivers the confirmation email for a paid
// booking. The context is honored best-effort: gomail dials synchronously,
// so the cancellation check only guards against sending after the caller
// has already given up.
func (m *Mailer) SendPaymentConfirmation(ctx context.Context, ev *events.BookingPaid) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", ev.Email)
	msg.SetHeader("Subject", "Booking Confirmed")
	msg.SetBody("text/plain", ConfirmationText(ev))
	msg.AddAlternative("text/html", ConfirmationHTML(ev))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending confirmation to %s: %w", ev.Email, err)
	}

	m.log.Info("Confirmation email sent", "booking_id", ev.BookingID, "email", ev.Email)
	return nil
}

// ConfirmationText renders the plain-text body.
func ConfirmationText(ev *events.BookingPaid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", ev.Name)
	fmt.Fprintf(&b, "Your payment has been received and your booking is confirmed.\n\n")
	fmt.Fprintf(&b, "Reference: %s\n", ev.RefID)
	fmt.Fprintf(&b, "Amount: %d\n", ev.Amount)
	fmt.Fprintf(&b, "Date: %s\n", dateRange(ev))
	if ev.Time != "" {
		fmt.Fprintf(&b, "Time: %s\n", ev.Time)
	}
	fmt.Fprintf(&b, "\nThank you for booking with us.\n")
	return b.String()
}

// ConfirmationHTML renders the HTML alternative.
func ConfirmationHTML(ev *events.BookingPaid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", htmlEscape(ev.Name))
	fmt.Fprintf(&b, "<p>Your payment has been received and your booking is confirmed.</p>")
	fmt.Fprintf(&b, "<ul>")
	fmt.Fprintf(&b, "<li><strong>Reference:</strong> %s</li>", htmlEscape(ev.RefID))
	fmt.Fprintf(&b, "<li><strong>Amount:</strong> %d</li>", ev.Amount)
	fmt.Fprintf(&b, "<li><strong>Date:</strong> %s</li>", htmlEscape(dateRange(ev)))
	if ev.Time != "" {
		fmt.Fprintf(&b, "<li><strong>Time:</strong> %s</li>", htmlEscape(ev.Time))
	}
	fmt.Fprintf(&b, "</ul>")
	fmt.Fprintf(&b, "<p>Thank you for booking with us.</p>")
	return b.String()
}

func dateRange(ev *events.BookingPaid) string {
	if ev.EndDate != "" && ev.EndDate != ev.StartDate {
		return ev.StartDate + " to " + ev.EndDate
	}
	return ev.StartDate
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlReplacer.Replace(s)
}
