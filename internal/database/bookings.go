package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"sharent/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_at, end_at, status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	b := &models.Booking{}
	var startStr, endStr string
	err := row.Scan(&b.ID, &b.ItemID, &b.BookerID, &startStr, &endStr, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if b.Start, err = parseStoredTime(startStr); err != nil {
		return nil, err
	}
	if b.End, err = parseStoredTime(endStr); err != nil {
		return nil, err
	}
	return b, nil
}

func (db *DB) CreateBooking(ctx context.Context, b *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_at, end_at, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		b.ItemID,
		b.BookerID,
		fmtTime(b.Start),
		fmtTime(b.End),
		b.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("booking insert id: %w", err)
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update booking %d status: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// BookingsByBooker selects the booker's bookings under the state filter,
// newest end first. The page window is applied as LIMIT/OFFSET so the
// result equals the [From, From+Size) slice of the full sorted list.
func (db *DB) BookingsByBooker(ctx context.Context, bookerID int64, state models.State, now time.Time, page *models.Page) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ?`
	args := []any{bookerID}

	switch state {
	case models.StateAll:
	case models.StateCurrent:
		query += ` AND start_at <= ? AND end_at > ?`
		args = append(args, fmtTime(now), fmtTime(now))
	case models.StatePast:
		query += ` AND end_at < ?`
		args = append(args, fmtTime(now))
	case models.StateFuture:
		query += ` AND start_at > ?`
		args = append(args, fmtTime(now))
	case models.StateWaiting:
		query += ` AND status = ?`
		args = append(args, models.StatusWaiting)
	case models.StateRejected:
		query += ` AND status = ?`
		args = append(args, models.StatusRejected)
	default:
		return nil, fmt.Errorf("unknown state filter %q", state)
	}

	query += ` ORDER BY end_at DESC`
	if page != nil {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Size, page.From)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings by booker %d: %w", bookerID, err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings by booker %d: %w", bookerID, err)
	}
	return bookings, nil
}

func (db *DB) BookingsByItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs))
	placeholders = placeholders[:len(placeholders)-1]
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id IN (` + placeholders + `)`

	args := make([]any, 0, len(itemIDs))
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings by items: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings by items: %w", err)
	}
	return bookings, nil
}

func (db *DB) LastBookingOfItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND end_at < ? ORDER BY end_at DESC LIMIT 1`
	b, err := scanBooking(db.QueryRowContext(ctx, query, itemID, fmtTime(now)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last booking of item %d: %w", itemID, err)
	}
	return b, nil
}

func (db *DB) NextBookingOfItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE item_id = ? AND start_at > ? ORDER BY start_at ASC LIMIT 1`
	b, err := scanBooking(db.QueryRowContext(ctx, query, itemID, fmtTime(now)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("next booking of item %d: %w", itemID, err)
	}
	return b, nil
}

func (db *DB) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND end_at < ?`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, bookerID, models.StatusApproved, fmtTime(now)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("finished bookings of item %d by %d: %w", itemID, bookerID, err)
	}
	return count > 0, nil
}

func (db *DB) AllBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY end_at DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("all bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all bookings: %w", err)
	}
	return bookings, nil
}
