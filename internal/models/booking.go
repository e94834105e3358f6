package models

import "time"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Booking - заявка на бронирование вещи на интервал [Start, End)
type Booking struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"itemId"`
	BookerID  int64         `json:"bookerId"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Decided reports whether the booking reached a terminal status.
func (b *Booking) Decided() bool {
	return b.Status != StatusWaiting
}

// Overlaps checks the half-open interval intersection with [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && b.End.After(start)
}
