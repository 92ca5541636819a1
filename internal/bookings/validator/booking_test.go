package validator

import (
	"io"
	"strings"
	"testing"

	"massbook/pkg/logger"
	"massbook/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.TEXT,
		Output: io.Discard,
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		RefID:     "ref-1",
		PaymentID: "pay_1",
		Status:    model.StatusPending,
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Amount:    5000,
		Time:      "10:00",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-03",
	}
}

func TestValidBookingPasses(t *testing.T) {
	if err := newTestValidator().Validate(validBooking()); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}
}

func TestRequiredFields(t *testing.T) {
	v := newTestValidator()

	cases := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{"missing payment id", func(b *model.Booking) { b.PaymentID = "" }},
		{"missing ref id", func(b *model.Booking) { b.RefID = "" }},
		{"missing name", func(b *model.Booking) { b.Name = "" }},
		{"missing email", func(b *model.Booking) { b.Email = "" }},
		{"missing start date", func(b *model.Booking) { b.StartDate = "" }},
		{"zero amount", func(b *model.Booking) { b.Amount = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestInvalidFormats(t *testing.T) {
	v := newTestValidator()

	cases := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{"bad email", func(b *model.Booking) { b.Email = "not-an-email" }},
		{"bad status", func(b *model.Booking) { b.Status = "refunded" }},
		{"bad time", func(b *model.Booking) { b.Time = "25:99" }},
		{"bad start date", func(b *model.Booking) { b.StartDate = "01/01/2024" }},
		{"bad end date", func(b *model.Booking) { b.EndDate = "2024-1-3" }},
		{"negative amount", func(b *model.Booking) { b.Amount = -100 }},
		{"bad object id", func(b *model.Booking) { b.ID = "not-hex" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBooking()
			tc.mutate(b)
			if err := v.Validate(b); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEndDateBeforeStartDate(t *testing.T) {
	b := validBooking()
	b.StartDate = "2024-02-10"
	b.EndDate = "2024-02-01"
	if err := newTestValidator().Validate(b); err == nil {
		t.Fatal("expected validation error for end date before start date")
	}
}

func TestOptionalFieldsMayBeEmpty(t *testing.T) {
	b := validBooking()
	b.Time = ""
	b.EndDate = ""
	b.Extra = nil
	if err := newTestValidator().Validate(b); err != nil {
		t.Fatalf("optional fields must be allowed empty: %v", err)
	}
}

func TestExtraMapBounds(t *testing.T) {
	v := newTestValidator()

	b := validBooking()
	b.Extra = map[string]string{"seat": "A12", "notes": "window side"}
	if err := v.Validate(b); err != nil {
		t.Fatalf("reasonable extra map rejected: %v", err)
	}

	b = validBooking()
	b.Extra = map[string]string{strings.Repeat("k", maxExtraKeyLength+1): "v"}
	if err := v.Validate(b); err == nil {
		t.Error("expected error for oversized extra key")
	}

	b = validBooking()
	b.Extra = map[string]string{"notes": strings.Repeat("x", maxExtraValueLength+1)}
	if err := v.Validate(b); err == nil {
		t.Error("expected error for oversized extra value")
	}

	b = validBooking()
	b.Extra = map[string]string{}
	for i := 0; i < maxExtraFields+1; i++ {
		b.Extra[strings.Repeat("k", i+1)] = "v"
	}
	if err := v.Validate(b); err == nil {
		t.Error("expected error for too many extra fields")
	}
}

func TestValidationErrorMentionsField(t *testing.T) {
	b := validBooking()
	b.Email = "nope"
	err := newTestValidator().Validate(b)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "email") {
		t.Errorf("error should name the failing field: %v", err)
	}
}
