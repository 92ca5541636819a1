package model

import (
	"time"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// EventChargeSuccess is the only processor event type that triggers the
// pending -> paid transition. Everything else is acknowledged and ignored.
const EventChargeSuccess = "charge.success"

// Booking is the sole persisted entity. JSON uses the client-facing
// camelCase contract; BSON field names follow the collection schema.
//
// PaymentID is set at creation and never changes. Status only moves forward
// along pending -> paid, and only via the payment webhook.
type Booking struct {
	ID        string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RefID     string            `json:"refId" bson:"ref_id" validate:"required,min=1,max=100"`
	PaymentID string            `json:"paymentId" bson:"payment_id" validate:"required,min=1,max=100"`
	Status    string            `json:"status" bson:"status" validate:"required,oneof=pending paid"`
	Name      string            `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Email     string            `json:"email" bson:"email" validate:"required,email"`
	Amount    int64             `json:"amount" bson:"amount" validate:"required,min=1"`
	Time      string            `json:"time,omitempty" bson:"time,omitempty" validate:"omitempty,datetime=15:04"`
	StartDate string            `json:"startDate" bson:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string            `json:"endDate,omitempty" bson:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Extra     map[string]string `json:"extra,omitempty" bson:"extra,omitempty" validate:"omitempty,extra_map"`
	CreatedAt time.Time         `json:"createdAt,omitempty" bson:"created_at" validate:"omitempty"`
}

// PaymentEvent is the webhook envelope delivered by the payment processor.
// Delivery is at-least-once and possibly out of order; handlers must
// tolerate duplicates.
type PaymentEvent struct {
	Event string           `json:"event"`
	Data  PaymentEventData `json:"data"`
}

type PaymentEventData struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount,omitempty"`
	PaidAt    string `json:"paid_at,omitempty"`
	Channel   string `json:"channel,omitempty"`
}
