package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kavia-common/gym-backend/internal/models"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository создает репозиторий записей на занятия.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, member_id, class_id, status, created_at`

// ResolveBookingStatus выбирает статус новой записи по заполненности занятия.
func ResolveBookingStatus(confirmedCount, capacity int) models.BookingStatus {
	if confirmedCount >= capacity {
		return models.BookingStatusWaitlisted
	}
	return models.BookingStatusConfirmed
}

// List возвращает все записи.
func (r *BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByMember возвращает записи участника.
func (r *BookingRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE member_id = $1 ORDER BY created_at`,
		memberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByID возвращает запись по идентификатору.
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	var booking models.Booking

	err := r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	).Scan(&booking.ID, &booking.MemberID, &booking.ClassID, &booking.Status, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking, ErrNotFound
		}
		return booking, err
	}

	return booking, nil
}

// Book записывает участника на занятие. Проверка вместимости и вставка
// выполняются в одной транзакции под блокировкой строки занятия.
func (r *BookingRepository) Book(ctx context.Context, memberID, classID uuid.UUID) (models.Booking, error) {
	var booking models.Booking

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return booking, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM class_schedules WHERE id = $1 FOR UPDATE`,
		classID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking, ErrNotFound
		}
		return booking, err
	}

	var hasBooking bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE member_id = $1 AND class_id = $2 AND status <> $3
		 )`,
		memberID, classID, models.BookingStatusCancelled,
	).Scan(&hasBooking)
	if err != nil {
		return booking, err
	}
	if hasBooking {
		return booking, ErrConflict
	}

	var confirmedCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE class_id = $1 AND status = $2`,
		classID, models.BookingStatusConfirmed,
	).Scan(&confirmedCount)
	if err != nil {
		return booking, err
	}

	status := ResolveBookingStatus(confirmedCount, capacity)

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (member_id, class_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING `+bookingColumns,
		memberID, classID, status,
	).Scan(&booking.ID, &booking.MemberID, &booking.ClassID, &booking.Status, &booking.CreatedAt)
	if err != nil {
		return booking, err
	}

	return booking, tx.Commit(ctx)
}

// Cancel отменяет запись и продвигает старейшую запись из листа ожидания.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	var booking models.Booking

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return booking, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`UPDATE bookings
		 SET status = $2
		 WHERE id = $1 AND status <> $2
		 RETURNING `+bookingColumns,
		id, models.BookingStatusCancelled,
	).Scan(&booking.ID, &booking.MemberID, &booking.ClassID, &booking.Status, &booking.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking, ErrInvalid
		}
		return booking, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings
		 SET status = $2
		 WHERE id = (
			SELECT id FROM bookings
			WHERE class_id = $1 AND status = $3
			ORDER BY created_at
			LIMIT 1
		 )`,
		booking.ClassID, models.BookingStatusConfirmed, models.BookingStatusWaitlisted,
	)
	if err != nil {
		return booking, err
	}

	return booking, tx.Commit(ctx)
}

// MarkAttendance сохраняет отметку о посещении; на запись допускается одна отметка.
func (r *BookingRepository) MarkAttendance(ctx context.Context, bookingID uuid.UUID, attended bool, notes *string) (models.Attendance, error) {
	var attendance models.Attendance

	err := r.db.QueryRow(ctx,
		`INSERT INTO attendance (booking_id, attended, notes)
		 VALUES ($1, $2, $3)
		 RETURNING id, booking_id, attended, notes, created_at`,
		bookingID, attended, notes,
	).Scan(&attendance.ID, &attendance.BookingID, &attendance.Attended, &attendance.Notes, &attendance.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return attendance, ErrConflict
			case "23503":
				return attendance, ErrNotFound
			}
		}
		return attendance, err
	}

	return attendance, nil
}

func scanBookings(rows pgx.Rows) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(&booking.ID, &booking.MemberID, &booking.ClassID, &booking.Status, &booking.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
