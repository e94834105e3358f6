package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_time, end_time, status, created_at, updated_at`

// normalize приводит момент к UTC с точностью до секунды, чтобы сравнение
// DATETIME-значений в SQLite оставалось корректным.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// CreateBooking inserts a WAITING booking. The overlap check runs again inside
// the same transaction as the insert, so two concurrent creates for the same
// item cannot both commit.
func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	start := normalize(booking.Start)
	end := normalize(booking.End)

	var overlapping int
	checkQuery := `SELECT COUNT(*) FROM bookings
	               WHERE item_id = ? AND status IN (?, ?) AND start_time < ? AND end_time > ?`
	err = tx.QueryRowContext(ctx, checkQuery,
		booking.ItemID, models.StatusWaiting, models.StatusApproved, end, start,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check overlap in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrOverlap
	}

	now := time.Now().UTC()
	insertQuery := `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status, created_at, updated_at)
	                VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, insertQuery,
		booking.ItemID, booking.BookerID, start, end, models.StatusWaiting, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.Start = start
	booking.End = end
	booking.Status = models.StatusWaiting
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	var b models.Booking
	err := db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

// UpdateBookingStatus переводит бронирование из from в to; если статус уже
// изменился конкурентно, запись не трогаем и возвращаем ErrStaleStatus.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, from, to models.BookingStatus) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrStaleStatus
	}
	return nil
}

// HasOverlappingBookings проверяет пересечение [start, end) с активными
// (WAITING/APPROVED) бронированиями вещи; REJECTED не учитываются.
func (db *DB) HasOverlappingBookings(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE item_id = ? AND status IN (?, ?) AND start_time < ? AND end_time > ?`
	var count int
	err := db.QueryRowContext(ctx, query,
		itemID, models.StatusWaiting, models.StatusApproved, normalize(end), normalize(start),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// HasOverlappingBookingsExcluding - то же, но без учета указанного
// бронирования (используется при подтверждении).
func (db *DB) HasOverlappingBookingsExcluding(ctx context.Context, itemID int64, start, end time.Time, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE item_id = ? AND id <> ? AND status IN (?, ?) AND start_time < ? AND end_time > ?`
	var count int
	err := db.QueryRowContext(ctx, query,
		itemID, excludeID, models.StatusWaiting, models.StatusApproved, normalize(end), normalize(start),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// stateClause возвращает SQL-условие и аргументы для фильтра состояния.
// Единственное место, где закрытый набор фильтров разворачивается в запросы.
func stateClause(state models.StateFilter, now time.Time) (string, []any) {
	now = normalize(now)
	switch state {
	case models.FilterCurrent:
		return ` AND b.start_time <= ? AND b.end_time > ?`, []any{now, now}
	case models.FilterPast:
		return ` AND b.end_time < ?`, []any{now}
	case models.FilterFuture:
		return ` AND b.start_time > ?`, []any{now}
	case models.FilterWaiting:
		return ` AND b.status = ?`, []any{models.StatusWaiting}
	case models.FilterRejected:
		return ` AND b.status = ?`, []any{models.StatusRejected}
	default: // FilterAll
		return ``, nil
	}
}

// ListBookings выполняет запрос планировщика: точка зрения выбирает ключ
// (заказчик либо владелец вещи), фильтр - условие, сортировка всегда
// start_time DESC с детерминированным добором по id.
func (db *DB) ListBookings(ctx context.Context, subjectID int64, viewpoint models.Viewpoint, state models.StateFilter, now time.Time, limit, offset int) ([]models.Booking, error) {
	var query string
	args := []any{subjectID}

	switch viewpoint {
	case models.ViewpointOwner:
		query = `SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status, b.created_at, b.updated_at
		         FROM bookings b JOIN items i ON i.id = b.item_id
		         WHERE i.owner_id = ?`
	default:
		query = `SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status, b.created_at, b.updated_at
		         FROM bookings b
		         WHERE b.booker_id = ?`
	}

	clause, clauseArgs := stateClause(state, now)
	query += clause
	args = append(args, clauseArgs...)

	query += ` ORDER BY b.start_time DESC, b.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LastBookingForItem - последнее завершившееся подтвержденное бронирование.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE item_id = ? AND status = ? AND end_time < ?
	          ORDER BY end_time DESC LIMIT 1`
	return db.oneBooking(ctx, query, itemID, models.StatusApproved, normalize(now))
}

// NextBookingForItem - ближайшее будущее подтвержденное бронирование.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE item_id = ? AND status = ? AND start_time > ?
	          ORDER BY start_time ASC LIMIT 1`
	return db.oneBooking(ctx, query, itemID, models.StatusApproved, normalize(now))
}

// HasFinishedBooking reports whether the user completed an approved booking of
// the item; gates comment posting.
func (db *DB) HasFinishedBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
	          WHERE item_id = ? AND booker_id = ? AND status = ? AND end_time < ?`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, userID, models.StatusApproved, normalize(now)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// GetBookingsByDateRange возвращает бронирования, начинающиеся в интервале
// [start, end]; используется экспортом отчетов.
func (db *DB) GetBookingsByDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE start_time >= ? AND start_time <= ?
	          ORDER BY start_time ASC, id ASC`
	rows, err := db.QueryContext(ctx, query, normalize(start), normalize(end))
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date range: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) oneBooking(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	var b models.Booking
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
