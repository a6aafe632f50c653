package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kavia-common/gym-backend/internal/models"
)

type DashboardRepository struct {
	db *pgxpool.Pool
}

// NewDashboardRepository создает репозиторий сводных метрик.
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{db: db}
}

type AdminMetrics struct {
	TotalMembers        int
	ActiveMemberships   int
	TotalTrainers       int
	UpcomingClasses     int
	MonthlyBookings     int
	MonthlyRevenueCents int64
	RecentBookingsCount int
}

type MemberUpcomingClass struct {
	BookingID  uuid.UUID
	ClassTitle string
	StartTime  time.Time
	Room       *string
}

type MemberMetrics struct {
	TotalBookings   int
	AttendedClasses int
}

type TrainerClassLoad struct {
	ClassID   uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Room      *string
	Booked    int
	Capacity  int
}

type TrainerMetrics struct {
	TotalClasses  int
	TotalBookings int
}

// AdminMetrics собирает метрики для панели администратора.
func (r *DashboardRepository) AdminMetrics(ctx context.Context, now time.Time) (AdminMetrics, error) {
	var metrics AdminMetrics

	weekLater := now.Add(7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users WHERE role = $1),
			(SELECT COUNT(*) FROM memberships WHERE status = $2),
			(SELECT COUNT(*) FROM trainers),
			(SELECT COUNT(*) FROM class_schedules WHERE start_time >= $3 AND start_time <= $4),
			(SELECT COUNT(*) FROM bookings WHERE created_at >= $5 AND status = $6),
			(SELECT COALESCE(SUM(p.price_cents), 0)
			 FROM memberships m
			 JOIN membership_plans p ON p.id = m.plan_id
			 WHERE m.created_at >= $5),
			(SELECT LEAST(COUNT(*), 10) FROM bookings)`,
		models.RoleMember, models.MembershipStatusActive, now, weekLater, monthStart, models.BookingStatusConfirmed,
	).Scan(&metrics.TotalMembers, &metrics.ActiveMemberships, &metrics.TotalTrainers,
		&metrics.UpcomingClasses, &metrics.MonthlyBookings, &metrics.MonthlyRevenueCents, &metrics.RecentBookingsCount)
	if err != nil {
		return metrics, err
	}

	return metrics, nil
}

// MemberUpcoming возвращает ближайшие подтвержденные занятия участника.
func (r *DashboardRepository) MemberUpcoming(ctx context.Context, memberID uuid.UUID, now time.Time, limit int) ([]MemberUpcomingClass, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, c.title, c.start_time, c.room
		 FROM bookings b
		 JOIN class_schedules c ON c.id = b.class_id
		 WHERE b.member_id = $1 AND b.status = $2 AND c.start_time >= $3
		 ORDER BY c.start_time
		 LIMIT $4`,
		memberID, models.BookingStatusConfirmed, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	upcoming := make([]MemberUpcomingClass, 0)
	for rows.Next() {
		var entry MemberUpcomingClass
		if err := rows.Scan(&entry.BookingID, &entry.ClassTitle, &entry.StartTime, &entry.Room); err != nil {
			return nil, err
		}
		upcoming = append(upcoming, entry)
	}

	return upcoming, rows.Err()
}

// MemberMetrics собирает итоги посещений участника.
func (r *DashboardRepository) MemberMetrics(ctx context.Context, memberID uuid.UUID) (MemberMetrics, error) {
	var metrics MemberMetrics

	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM bookings WHERE member_id = $1 AND status = $2),
			(SELECT COUNT(*)
			 FROM attendance a
			 JOIN bookings b ON b.id = a.booking_id
			 WHERE b.member_id = $1 AND a.attended)`,
		memberID, models.BookingStatusConfirmed,
	).Scan(&metrics.TotalBookings, &metrics.AttendedClasses)
	if err != nil {
		return metrics, err
	}

	return metrics, nil
}

// TrainerUpcoming возвращает ближайшие занятия тренера с загрузкой.
func (r *DashboardRepository) TrainerUpcoming(ctx context.Context, trainerID uuid.UUID, now time.Time, limit int) ([]TrainerClassLoad, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.title, c.start_time, c.end_time, c.room, c.capacity,
		        COUNT(b.id) FILTER (WHERE b.status = $2) AS booked
		 FROM class_schedules c
		 LEFT JOIN bookings b ON b.class_id = c.id
		 WHERE c.trainer_id = $1 AND c.start_time >= $3
		 GROUP BY c.id
		 ORDER BY c.start_time
		 LIMIT $4`,
		trainerID, models.BookingStatusConfirmed, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]TrainerClassLoad, 0)
	for rows.Next() {
		var entry TrainerClassLoad
		err := rows.Scan(&entry.ClassID, &entry.Title, &entry.StartTime, &entry.EndTime, &entry.Room, &entry.Capacity, &entry.Booked)
		if err != nil {
			return nil, err
		}
		classes = append(classes, entry)
	}

	return classes, rows.Err()
}

// TrainerMetrics собирает итоги по занятиям тренера.
func (r *DashboardRepository) TrainerMetrics(ctx context.Context, trainerID uuid.UUID) (TrainerMetrics, error) {
	var metrics TrainerMetrics

	err := r.db.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM class_schedules WHERE trainer_id = $1),
			(SELECT COUNT(*)
			 FROM bookings b
			 JOIN class_schedules c ON c.id = b.class_id
			 WHERE c.trainer_id = $1 AND b.status = $2)`,
		trainerID, models.BookingStatusConfirmed,
	).Scan(&metrics.TotalClasses, &metrics.TotalBookings)
	if err != nil {
		return metrics, err
	}

	return metrics, nil
}

// TrainerByUser возвращает профиль тренера по идентификатору пользователя.
func (r *DashboardRepository) TrainerByUser(ctx context.Context, userID uuid.UUID) (models.Trainer, error) {
	var trainer models.Trainer

	err := r.db.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE user_id = $1`,
		userID,
	).Scan(&trainer.ID, &trainer.UserID, &trainer.Bio, &trainer.Specialties, &trainer.Certifications, &trainer.CreatedAt)
	if err != nil {
		return trainer, mapNoRows(err)
	}

	return trainer, nil
}
