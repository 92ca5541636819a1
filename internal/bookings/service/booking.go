package service

import (
	"context"
	"errors"

	bookingserrors "massbook/internal/bookings/errors"
	"massbook/internal/bookings/repository"
	"massbook/internal/bookings/validator"
	"massbook/internal/notifications"
	"massbook/pkg/config"
	apperrors "massbook/pkg/errors"
	"massbook/pkg/model"
	"massbook/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// List returns bookings newest first, optionally filtered by status.
	// A zero limit returns everything.
	List(ctx context.Context, status string, limit int, offset int64) ([]*model.Booking, error)
	// HandlePaymentEvent applies the pending -> paid transition for a
	// successful charge event. It is safe under at-least-once delivery:
	// duplicates re-apply the same status and unmatched references are
	// ignored.
	HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) error
}

type bookingService struct {
	repo       repository.BookingRepository
	validator  *validator.BookingValidator
	dispatcher notifications.Dispatcher
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	dispatcher notifications.Dispatcher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		validator:  validator,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	s.applyDefaults(booking)

	if err := s.validate(booking); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "payment_id", booking.PaymentID, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"ref_id", booking.RefID,
		"payment_id", booking.PaymentID,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, status string, limit int, offset int64) ([]*model.Booking, error) {
	bookings, err := s.repo.FindByStatus(ctx, status, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "status", status, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

func (s *bookingService) HandlePaymentEvent(ctx context.Context, event *model.PaymentEvent) error {
	if event.Event != model.EventChargeSuccess {
		s.cfg.Log.Debug("Ignoring payment event", "event", event.Event)
		return nil
	}

	reference := sanitizer.NormalizeReference(event.Data.Reference)
	if reference == "" {
		s.cfg.Log.Warn("Payment event without reference", "event", event.Event)
		return nil
	}

	booking, err := s.repo.MarkPaid(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			// Not an error: the processor may deliver events for payments
			// this system never created.
			s.cfg.Log.Info("No booking found for payment reference", "reference", reference)
			return nil
		}
		s.cfg.Log.Error("Failed to update booking status", "reference", reference, "error", err)
		return apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking marked as paid", "id", booking.ID, "reference", reference)

	s.dispatchConfirmation(booking)
	return nil
}

// dispatchConfirmation runs detached from the request: the webhook
// acknowledgment must not wait on, or fail because of, the notification
// path.
func (s *bookingService) dispatchConfirmation(booking *model.Booking) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.cfg.Log.Error("Panic in notification dispatch", "booking_id", booking.ID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.NotifyTimeout)
		defer cancel()

		if err := s.dispatcher.BookingPaid(ctx, booking); err != nil {
			s.cfg.Log.Error("Failed to dispatch payment confirmation",
				"booking_id", booking.ID,
				"email", booking.Email,
				"error", err,
			)
		}
	}()
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Email = sanitizer.NormalizeEmail(b.Email)
	b.RefID = sanitizer.NormalizeReference(b.RefID)
	b.PaymentID = sanitizer.NormalizeReference(b.PaymentID)
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.RefID == "" {
		b.RefID = b.PaymentID
	}
	if b.Status == "" {
		b.Status = model.StatusPending
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation(err.Error(), nil)
	}
	return nil
}
