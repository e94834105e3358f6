package database

import "errors"

var (
	// ErrNotFound сигнализирует об отсутствии записи
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate нарушение уникальности (например, email пользователя)
	ErrDuplicate = errors.New("record already exists")

	// ErrOverlap пересечение интервалов бронирования внутри транзакции
	ErrOverlap = errors.New("booking overlaps an existing booking")

	// ErrStaleStatus статус изменился между чтением и записью
	ErrStaleStatus = errors.New("booking status changed concurrently")
)
