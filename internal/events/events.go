package events

import "time"

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
)

// BookingEventPayload describes the minimal booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	DecidedBy int64     `json:"decided_by,omitempty"`
}

// NoopPublisher drops events; used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishJSON(string, interface{}) error { return nil }
