package models

import "time"

type Item struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Available   bool      `json:"available" yaml:"available"`
	OwnerID     int64     `json:"ownerId" yaml:"owner_id"`
	RequestID   *int64    `json:"requestId,omitempty" yaml:"-"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"-"`
}

// ItemDetails - вещь вместе с данными для карточки: отзывы и, для владельца,
// последнее и ближайшее подтвержденное бронирование.
type ItemDetails struct {
	Item
	LastBooking *Booking  `json:"lastBooking,omitempty"`
	NextBooking *Booking  `json:"nextBooking,omitempty"`
	Comments    []Comment `json:"comments"`
}
