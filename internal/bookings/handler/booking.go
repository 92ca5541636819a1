package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"massbook/internal/bookings/service"
	"massbook/pkg/config"
	apperrors "massbook/pkg/errors"
	httputil "massbook/pkg/http"
	"massbook/pkg/middleware"
	"massbook/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	cfg     *config.Config
}

func NewBookingHandler(service service.BookingService, cfg *config.Config) *BookingHandler {
	return &BookingHandler{service: service, cfg: cfg}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", h.Create)
	router.GET("/api/bookings", h.GetAll)
	router.GET("/api/bookings/id/:id", h.GetByID)
}

// RegisterWebhookRoutes mounts the payment callback. It is registered on a
// separate router so the processor is never answered by the client-facing
// rate limiting, content-type, or timeout middleware; anything other than
// the signature check must end in a 200.
func (h *BookingHandler) RegisterWebhookRoutes(router *httprouter.Router) {
	webhook := httprouter.Handle(h.PaymentWebhook)
	if h.cfg.WebhookSecret != "" {
		verify := middleware.WebhookSignatureVerification(h.cfg.WebhookSecret, h.cfg.Log)
		webhook = verify(webhook)
	}
	router.POST("/api/bookings/webhook/payment", webhook)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		h.writeError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	// Server-assigned fields are never accepted from the client.
	booking.ID = ""
	booking.Status = ""
	booking.CreatedAt = time.Time{}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

// GetAll returns bookings as a bare array, newest first. The status filter
// is passed through verbatim; an unknown value simply matches nothing.
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status := r.URL.Query().Get("status")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	bookings, err := h.service.List(r.Context(), status, limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.cfg.Log.Error("Failed to write response", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	if werr := httputil.WriteError(w, err); werr != nil {
		h.cfg.Log.Error("Failed to write error response", "error", werr)
	}
}
