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

type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository создает репозиторий абонементов.
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

const membershipColumns = `id, member_id, plan_id, start_date, end_date, status, created_at`

// List возвращает все абонементы.
func (r *MembershipRepository) List(ctx context.Context) ([]models.Membership, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+membershipColumns+` FROM memberships ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMemberships(rows)
}

// ListByMember возвращает абонементы конкретного участника.
func (r *MembershipRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]models.Membership, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+membershipColumns+` FROM memberships WHERE member_id = $1 ORDER BY created_at`,
		memberID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMemberships(rows)
}

// Create создает абонемент с заданным периодом действия.
func (r *MembershipRepository) Create(ctx context.Context, memberID, planID uuid.UUID, startDate, endDate time.Time) (models.Membership, error) {
	var membership models.Membership

	err := r.db.QueryRow(ctx,
		`INSERT INTO memberships (member_id, plan_id, start_date, end_date, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+membershipColumns,
		memberID, planID, startDate, endDate, models.MembershipStatusActive,
	).Scan(&membership.ID, &membership.MemberID, &membership.PlanID, &membership.StartDate, &membership.EndDate, &membership.Status, &membership.CreatedAt)
	if err != nil {
		return membership, err
	}

	return membership, nil
}

// Cancel переводит абонемент в статус cancelled.
func (r *MembershipRepository) Cancel(ctx context.Context, id uuid.UUID) (models.Membership, error) {
	var membership models.Membership

	err := r.db.QueryRow(ctx,
		`UPDATE memberships
		 SET status = $2
		 WHERE id = $1
		 RETURNING `+membershipColumns,
		id, models.MembershipStatusCancelled,
	).Scan(&membership.ID, &membership.MemberID, &membership.PlanID, &membership.StartDate, &membership.EndDate, &membership.Status, &membership.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership, ErrNotFound
		}
		return membership, err
	}

	return membership, nil
}

// ActiveByMember возвращает действующий абонемент участника.
func (r *MembershipRepository) ActiveByMember(ctx context.Context, memberID uuid.UUID) (models.Membership, error) {
	var membership models.Membership

	err := r.db.QueryRow(ctx,
		`SELECT `+membershipColumns+`
		 FROM memberships
		 WHERE member_id = $1 AND status = $2
		 ORDER BY end_date DESC
		 LIMIT 1`,
		memberID, models.MembershipStatusActive,
	).Scan(&membership.ID, &membership.MemberID, &membership.PlanID, &membership.StartDate, &membership.EndDate, &membership.Status, &membership.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return membership, ErrNotFound
		}
		return membership, err
	}

	return membership, nil
}

func scanMemberships(rows pgx.Rows) ([]models.Membership, error) {
	memberships := make([]models.Membership, 0)
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.MemberID, &m.PlanID, &m.StartDate, &m.EndDate, &m.Status, &m.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}
