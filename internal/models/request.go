package models

import "time"

// ItemRequest - запрос вещи, которой еще нет в каталоге. Владельцы отвечают
// на запрос, создавая вещь со ссылкой на него.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestorId"`
	CreatedAt   time.Time `json:"created"`
	Items       []Item    `json:"items"`
}
