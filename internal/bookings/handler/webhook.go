package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "massbook/pkg/http"
	"massbook/pkg/model"
)

const webhookAck = "Webhook received"

// PaymentWebhook receives payment processor callbacks. It always
// acknowledges with 200 regardless of outcome: a non-2xx reply would make
// the processor redeliver an event this system has already decided how to
// treat, and processing failures are recovered from the store rather than
// the retry channel.
func (h *BookingHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var event model.PaymentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.cfg.Log.Warn("Malformed payment webhook payload", "error", err)
		h.ack(w)
		return
	}

	if err := h.service.HandlePaymentEvent(r.Context(), &event); err != nil {
		h.cfg.Log.Error("Payment webhook processing failed",
			"event", event.Event,
			"reference", event.Data.Reference,
			"error", err,
		)
	}

	h.ack(w)
}

func (h *BookingHandler) ack(w http.ResponseWriter) {
	if err := httputil.WriteText(w, http.StatusOK, webhookAck); err != nil {
		h.cfg.Log.Error("Failed to write webhook acknowledgment", "error", err)
	}
}
