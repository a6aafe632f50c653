package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kavia-common/gym-backend/internal/models"
)

type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository создает репозиторий расписания занятий.
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{db: db}
}

// ClassWithBookings объединяет занятие и число подтвержденных записей.
type ClassWithBookings struct {
	models.ClassSchedule
	BookedCount int
}

// ClassUpdate описывает частичное обновление занятия; nil-поля не меняются.
type ClassUpdate struct {
	Title       *string
	Description *string
	TrainerID   *uuid.UUID
	Room        *string
	Capacity    *int
	StartTime   *time.Time
	EndTime     *time.Time
}

const classSelect = `
	SELECT c.id, c.title, c.description, c.trainer_id, c.room, c.capacity,
	       c.start_time, c.end_time, c.created_at,
	       COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS booked_count
	FROM class_schedules c
	LEFT JOIN bookings b ON b.class_id = c.id`

// List возвращает занятия с опциональным фильтром по времени начала.
func (r *ClassRepository) List(ctx context.Context, startAfter, startBefore *time.Time) ([]ClassWithBookings, error) {
	rows, err := r.db.Query(ctx,
		classSelect+`
		 WHERE ($1::timestamptz IS NULL OR c.start_time >= $1)
		   AND ($2::timestamptz IS NULL OR c.start_time <= $2)
		 GROUP BY c.id
		 ORDER BY c.start_time`,
		startAfter, startBefore,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// ListByTrainer возвращает занятия тренера.
func (r *ClassRepository) ListByTrainer(ctx context.Context, trainerID uuid.UUID) ([]ClassWithBookings, error) {
	rows, err := r.db.Query(ctx,
		classSelect+`
		 WHERE c.trainer_id = $1
		 GROUP BY c.id
		 ORDER BY c.start_time`,
		trainerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// GetByID возвращает занятие с числом записей.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (ClassWithBookings, error) {
	var cls ClassWithBookings

	err := r.db.QueryRow(ctx,
		classSelect+`
		 WHERE c.id = $1
		 GROUP BY c.id`,
		id,
	).Scan(&cls.ID, &cls.Title, &cls.Description, &cls.TrainerID, &cls.Room, &cls.Capacity,
		&cls.StartTime, &cls.EndTime, &cls.CreatedAt, &cls.BookedCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cls, ErrNotFound
		}
		return cls, err
	}

	return cls, nil
}

// Create создает занятие в расписании.
func (r *ClassRepository) Create(ctx context.Context, title string, description *string, trainerID uuid.UUID, room *string, capacity int, startTime, endTime time.Time) (models.ClassSchedule, error) {
	var cls models.ClassSchedule

	err := r.db.QueryRow(ctx,
		`INSERT INTO class_schedules (title, description, trainer_id, room, capacity, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, title, description, trainer_id, room, capacity, start_time, end_time, created_at`,
		title, description, trainerID, room, capacity, startTime, endTime,
	).Scan(&cls.ID, &cls.Title, &cls.Description, &cls.TrainerID, &cls.Room, &cls.Capacity,
		&cls.StartTime, &cls.EndTime, &cls.CreatedAt)
	if err != nil {
		return cls, err
	}

	return cls, nil
}

// Update обновляет только переданные поля занятия.
func (r *ClassRepository) Update(ctx context.Context, id uuid.UUID, update ClassUpdate) (models.ClassSchedule, error) {
	var cls models.ClassSchedule

	err := r.db.QueryRow(ctx,
		`UPDATE class_schedules
		 SET title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     trainer_id = COALESCE($4, trainer_id),
		     room = COALESCE($5, room),
		     capacity = COALESCE($6, capacity),
		     start_time = COALESCE($7, start_time),
		     end_time = COALESCE($8, end_time)
		 WHERE id = $1
		 RETURNING id, title, description, trainer_id, room, capacity, start_time, end_time, created_at`,
		id, update.Title, update.Description, update.TrainerID, update.Room, update.Capacity, update.StartTime, update.EndTime,
	).Scan(&cls.ID, &cls.Title, &cls.Description, &cls.TrainerID, &cls.Room, &cls.Capacity,
		&cls.StartTime, &cls.EndTime, &cls.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cls, ErrNotFound
		}
		return cls, err
	}

	return cls, nil
}

// Delete удаляет занятие из расписания.
func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanClasses(rows pgx.Rows) ([]ClassWithBookings, error) {
	classes := make([]ClassWithBookings, 0)
	for rows.Next() {
		var cls ClassWithBookings
		err := rows.Scan(&cls.ID, &cls.Title, &cls.Description, &cls.TrainerID, &cls.Room, &cls.Capacity,
			&cls.StartTime, &cls.EndTime, &cls.CreatedAt, &cls.BookedCount)
		if err != nil {
			return nil, err
		}
		classes = append(classes, cls)
	}

	return classes, rows.Err()
}
