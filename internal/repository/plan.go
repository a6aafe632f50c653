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

type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository создает репозиторий тарифных планов.
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// PlanUpdate описывает частичное обновление плана; nil-поля не меняются.
type PlanUpdate struct {
	Name         *string
	Description  *string
	DurationDays *int
	PriceCents   *int64
	Features     *string
}

// List возвращает все тарифные планы.
func (r *PlanRepository) List(ctx context.Context) ([]models.MembershipPlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, duration_days, price_cents, features, created_at
		 FROM membership_plans
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.MembershipPlan, 0)
	for rows.Next() {
		var plan models.MembershipPlan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.DurationDays, &plan.PriceCents, &plan.Features, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// GetByID возвращает тарифный план по идентификатору.
func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (models.MembershipPlan, error) {
	var plan models.MembershipPlan

	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, duration_days, price_cents, features, created_at
		 FROM membership_plans
		 WHERE id = $1`,
		id,
	).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.DurationDays, &plan.PriceCents, &plan.Features, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan, ErrNotFound
		}
		return plan, err
	}

	return plan, nil
}

// Create создает тарифный план.
func (r *PlanRepository) Create(ctx context.Context, name string, description *string, durationDays int, priceCents int64, features *string) (models.MembershipPlan, error) {
	var plan models.MembershipPlan

	err := r.db.QueryRow(ctx,
		`INSERT INTO membership_plans (name, description, duration_days, price_cents, features)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, description, duration_days, price_cents, features, created_at`,
		name, description, durationDays, priceCents, features,
	).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.DurationDays, &plan.PriceCents, &plan.Features, &plan.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return plan, ErrConflict
		}
		return plan, err
	}

	return plan, nil
}

// Update обновляет только переданные поля тарифного плана.
func (r *PlanRepository) Update(ctx context.Context, id uuid.UUID, update PlanUpdate) (models.MembershipPlan, error) {
	var plan models.MembershipPlan

	err := r.db.QueryRow(ctx,
		`UPDATE membership_plans
		 SET name = COALESCE($2, name),
		     description = COALESCE($3, description),
		     duration_days = COALESCE($4, duration_days),
		     price_cents = COALESCE($5, price_cents),
		     features = COALESCE($6, features)
		 WHERE id = $1
		 RETURNING id, name, description, duration_days, price_cents, features, created_at`,
		id, update.Name, update.Description, update.DurationDays, update.PriceCents, update.Features,
	).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.DurationDays, &plan.PriceCents, &plan.Features, &plan.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return plan, ErrConflict
		}
		return plan, err
	}

	return plan, nil
}

// Delete удаляет тарифный план.
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM membership_plans WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
