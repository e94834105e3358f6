package service

import (
	"context"
	"errors"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/clock"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService владеет жизненным циклом бронирования: создание заявки,
// решение владельца, выдача и списки. Все временные правила считаются от
// инжектированных часов.
type BookingService struct {
	repo     domain.Repository
	checker  *AvailabilityChecker
	eventBus domain.EventPublisher
	clock    clock.Clock
	logger   *zerolog.Logger
	locks    *itemLocks
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, clk clock.Clock, logger *zerolog.Logger) *BookingService {
	if eventBus == nil {
		eventBus = events.NoopPublisher{}
	}
	return &BookingService{
		repo:     repo,
		checker:  NewAvailabilityChecker(repo),
		eventBus: eventBus,
		clock:    clk,
		logger:   logger,
		locks:    newItemLocks(),
	}
}

// Create регистрирует заявку со статусом WAITING. Проверки выполняются в
// фиксированном порядке, первая ошибка прерывает операцию без побочных
// эффектов.
func (s *BookingService) Create(ctx context.Context, itemID int64, start, end time.Time, bookerID int64) (*models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %d", bookerID)
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %d", itemID)
		}
		return nil, apperr.Internal("failed to load item", err)
	}

	if !item.Available {
		return nil, apperr.Validation("item is not available for booking")
	}
	if item.OwnerID == bookerID {
		return nil, apperr.Conflict("owner cannot book own item")
	}
	if !start.Before(end) {
		return nil, apperr.Validation("start must be before end")
	}
	if !start.After(s.clock.Now()) {
		return nil, apperr.Validation("start must be in the future")
	}

	// Проверка пересечений и запись под одним замком вещи; транзакция в
	// хранилище повторяет проверку как страховку.
	lock := s.locks.lock(itemID)
	defer lock.Unlock()

	overlap, err := s.checker.HasOverlap(ctx, itemID, start, end)
	if err != nil {
		return nil, apperr.Internal("failed to check availability", err)
	}
	if overlap {
		return nil, apperr.Validation("item is already booked for the requested dates")
	}

	booking := &models.Booking{
		ItemID:   itemID,
		BookerID: bookerID,
		Start:    start,
		End:      end,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, database.ErrOverlap) {
			return nil, apperr.Validation("item is already booked for the requested dates")
		}
		return nil, apperr.Internal("failed to create booking", err)
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", itemID).
		Int64("booker_id", bookerID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, 0)

	return booking, nil
}

// Decide применяет решение владельца к заявке в статусе WAITING. Перед
// подтверждением пересечения проверяются заново, исключая саму заявку;
// при конфликте заявка остается в WAITING.
func (s *BookingService) Decide(ctx context.Context, bookingID int64, approved bool, ownerID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("booking not found: %d", bookingID)
		}
		return nil, apperr.Internal("failed to load booking", err)
	}

	item, err := s.repo.GetItem(ctx, booking.ItemID)
	if err != nil {
		return nil, apperr.Internal("failed to load booked item", err)
	}
	if item.OwnerID != ownerID {
		return nil, apperr.Forbidden("only the item owner can decide a booking")
	}
	if booking.Decided() {
		return nil, apperr.Conflict("booking already decided")
	}

	lock := s.locks.lock(booking.ItemID)
	defer lock.Unlock()

	if approved {
		overlap, err := s.checker.HasOverlapExcluding(ctx, booking.ItemID, booking.Start, booking.End, bookingID)
		if err != nil {
			return nil, apperr.Internal("failed to check availability", err)
		}
		if overlap {
			return nil, apperr.Validation("cannot approve booking: dates overlap another booking")
		}
	}

	target := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		target = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	err = s.repo.UpdateBookingStatus(ctx, bookingID, models.StatusWaiting, target)
	if err != nil {
		if errors.Is(err, database.ErrStaleStatus) {
			return nil, apperr.Conflict("booking already decided")
		}
		return nil, apperr.Internal("failed to update booking status", err)
	}

	// Перечитываем запись: updated_at проставляется в хранилище
	booking, err = s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, apperr.Internal("failed to reload booking", err)
	}

	s.logger.Info().Int64("booking_id", bookingID).Bool("approved", approved).Msg("booking decided")
	s.publishEvent(eventType, booking, ownerID)

	return booking, nil
}

// GetByID выдает бронирование только его заказчику или владельцу вещи.
// Посторонним отвечаем NotFound, а не Forbidden: существование чужой заявки
// не раскрывается.
func (s *BookingService) GetByID(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("booking not found: %d", bookingID)
		}
		return nil, apperr.Internal("failed to load booking", err)
	}

	if booking.BookerID != userID {
		item, err := s.repo.GetItem(ctx, booking.ItemID)
		if err != nil {
			return nil, apperr.Internal("failed to load booked item", err)
		}
		if item.OwnerID != userID {
			return nil, apperr.NotFound("booking not found: %d", bookingID)
		}
	}

	return booking, nil
}

// ListForBooker возвращает бронирования, оформленные пользователем.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID int64, state models.StateFilter, from, size int) ([]models.Booking, error) {
	return s.list(ctx, bookerID, models.ViewpointBooker, state, from, size)
}

// ListForOwner возвращает бронирования вещей, принадлежащих пользователю.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state models.StateFilter, from, size int) ([]models.Booking, error) {
	return s.list(ctx, ownerID, models.ViewpointOwner, state, from, size)
}

func (s *BookingService) list(ctx context.Context, subjectID int64, viewpoint models.Viewpoint, state models.StateFilter, from, size int) ([]models.Booking, error) {
	if from < 0 {
		return nil, apperr.Validation("from must not be negative")
	}
	if size <= 0 {
		return nil, apperr.Validation("size must be positive")
	}

	if _, err := s.repo.GetUser(ctx, subjectID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %d", subjectID)
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	bookings, err := s.repo.ListBookings(ctx, subjectID, viewpoint, state, s.clock.Now(), size, from)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	return bookings, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, decidedBy int64) {
	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		DecidedBy: decidedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).
			Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
