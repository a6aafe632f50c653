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

type TrainerRepository struct {
	db *pgxpool.Pool
}

// NewTrainerRepository создает репозиторий профилей тренеров.
func NewTrainerRepository(db *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{db: db}
}

// TrainerUpdate описывает частичное обновление профиля; nil-поля не меняются.
type TrainerUpdate struct {
	Bio            *string
	Specialties    *string
	Certifications *string
}

const trainerColumns = `id, user_id, bio, specialties, certifications, created_at`

// List возвращает все профили тренеров.
func (r *TrainerRepository) List(ctx context.Context) ([]models.Trainer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+trainerColumns+` FROM trainers ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainers := make([]models.Trainer, 0)
	for rows.Next() {
		var trainer models.Trainer
		if err := rows.Scan(&trainer.ID, &trainer.UserID, &trainer.Bio, &trainer.Specialties, &trainer.Certifications, &trainer.CreatedAt); err != nil {
			return nil, err
		}
		trainers = append(trainers, trainer)
	}

	return trainers, rows.Err()
}

// GetByID возвращает профиль тренера по идентификатору.
func (r *TrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Trainer, error) {
	var trainer models.Trainer

	err := r.db.QueryRow(ctx,
		`SELECT `+trainerColumns+` FROM trainers WHERE id = $1`,
		id,
	).Scan(&trainer.ID, &trainer.UserID, &trainer.Bio, &trainer.Specialties, &trainer.Certifications, &trainer.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trainer, ErrNotFound
		}
		return trainer, err
	}

	return trainer, nil
}

// Create создает профиль тренера; на пользователя допускается один профиль.
func (r *TrainerRepository) Create(ctx context.Context, userID uuid.UUID, bio, specialties, certifications *string) (models.Trainer, error) {
	var trainer models.Trainer

	err := r.db.QueryRow(ctx,
		`INSERT INTO trainers (user_id, bio, specialties, certifications)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+trainerColumns,
		userID, bio, specialties, certifications,
	).Scan(&trainer.ID, &trainer.UserID, &trainer.Bio, &trainer.Specialties, &trainer.Certifications, &trainer.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return trainer, ErrConflict
		}
		return trainer, err
	}

	return trainer, nil
}

// Update обновляет только переданные поля профиля.
func (r *TrainerRepository) Update(ctx context.Context, id uuid.UUID, update TrainerUpdate) (models.Trainer, error) {
	var trainer models.Trainer

	err := r.db.QueryRow(ctx,
		`UPDATE trainers
		 SET bio = COALESCE($2, bio),
		     specialties = COALESCE($3, specialties),
		     certifications = COALESCE($4, certifications)
		 WHERE id = $1
		 RETURNING `+trainerColumns,
		id, update.Bio, update.Specialties, update.Certifications,
	).Scan(&trainer.ID, &trainer.UserID, &trainer.Bio, &trainer.Specialties, &trainer.Certifications, &trainer.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trainer, ErrNotFound
		}
		return trainer, err
	}

	return trainer, nil
}

// Delete удаляет профиль тренера.
func (r *TrainerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
