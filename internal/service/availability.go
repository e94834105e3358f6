package service

import (
	"context"
	"time"

	"shareit/internal/domain"
)

// AvailabilityChecker решает, конфликтует ли интервал-кандидат с активными
// бронированиями вещи. Фильтр статусов (WAITING/APPROVED) живет в самом
// запросе хранилища, поэтому REJECTED никогда не конфликтуют. Только чтение.
type AvailabilityChecker struct {
	repo domain.Repository
}

func NewAvailabilityChecker(repo domain.Repository) *AvailabilityChecker {
	return &AvailabilityChecker{repo: repo}
}

// HasOverlap проверяет пересечение [start, end) со всеми активными
// бронированиями вещи; используется при создании.
func (c *AvailabilityChecker) HasOverlap(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	return c.repo.HasOverlappingBookings(ctx, itemID, start, end)
}

// HasOverlapExcluding исключает из проверки само подтверждаемое бронирование,
// чтобы оно не конфликтовало с собой.
func (c *AvailabilityChecker) HasOverlapExcluding(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error) {
	return c.repo.HasOverlappingBookingsExcluding(ctx, itemID, start, end, excludeID)
}
