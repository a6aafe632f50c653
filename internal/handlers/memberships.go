package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/auth"
	"github.com/kavia-common/gym-backend/internal/models"
	"github.com/kavia-common/gym-backend/internal/repository"
)

type MembershipHandler struct {
	Plans       *repository.PlanRepository
	Memberships *repository.MembershipRepository
	Users       *repository.UserRepository
}

// NewMembershipHandler создает обработчик тарифов и абонементов.
func NewMembershipHandler(plans *repository.PlanRepository, memberships *repository.MembershipRepository, users *repository.UserRepository) *MembershipHandler {
	return &MembershipHandler{
		Plans:       plans,
		Memberships: memberships,
		Users:       users,
	}
}

type PlanRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Description  *string `json:"description"`
	DurationDays int     `json:"duration_days" validate:"gt=0"`
	PriceCents   int64   `json:"price_cents" validate:"gte=0"`
	Features     *string `json:"features"`
}

type PlanUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=200"`
	Description  *string `json:"description"`
	DurationDays *int    `json:"duration_days" validate:"omitempty,gt=0"`
	PriceCents   *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Features     *string `json:"features"`
}

type MembershipRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid4"`
	PlanID   string `json:"plan_id" validate:"required,uuid4"`
}

// membershipWindow вычисляет период действия абонемента по длительности плана.
func membershipWindow(now time.Time, durationDays int) (time.Time, time.Time) {
	start := now.UTC()
	return start, start.Add(time.Duration(durationDays) * 24 * time.Hour)
}

// ListPlans возвращает все тарифные планы.
func (h *MembershipHandler) ListPlans(c echo.Context) error {
	plans, err := h.Plans.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.MembershipPlan{"plans": plans})
}

// CreatePlan создает тарифный план.
func (h *MembershipHandler) CreatePlan(c echo.Context) error {
	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	plan, err := h.Plans.Create(c.Request().Context(), name, req.Description, req.DurationDays, req.PriceCents, req.Features)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "plan with this name already exists")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, plan)
}

// UpdatePlan обновляет переданные поля тарифного плана.
func (h *MembershipHandler) UpdatePlan(c echo.Context) error {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	var req PlanUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	plan, err := h.Plans.Update(c.Request().Context(), planID, repository.PlanUpdate{
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		PriceCents:   req.PriceCents,
		Features:     req.Features,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "membership plan not found")
		}
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "plan with this name already exists")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, plan)
}

// DeletePlan удаляет тарифный план.
func (h *MembershipHandler) DeletePlan(c echo.Context) error {
	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	if err := h.Plans.Delete(c.Request().Context(), planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "membership plan not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// List возвращает абонементы: администратору все, участнику свои.
func (h *MembershipHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var memberships []models.Membership
	var err error

	if auth.IsAdmin(c) {
		memberships, err = h.Memberships.List(c.Request().Context())
	} else {
		memberships, err = h.Memberships.ListByMember(c.Request().Context(), userID)
	}
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Membership{"memberships": memberships})
}

// Create оформляет абонемент участнику по выбранному плану.
func (h *MembershipHandler) Create(c echo.Context) error {
	var req MembershipRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return badRequest(c, "invalid member id")
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	if _, err := h.Users.GetByID(c.Request().Context(), memberID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "member not found")
		}
		return serverError(c)
	}

	plan, err := h.Plans.GetByID(c.Request().Context(), planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "membership plan not found")
		}
		return serverError(c)
	}

	startDate, endDate := membershipWindow(time.Now(), plan.DurationDays)

	membership, err := h.Memberships.Create(c.Request().Context(), memberID, planID, startDate, endDate)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, membership)
}

// Cancel отменяет абонемент.
func (h *MembershipHandler) Cancel(c echo.Context) error {
	membershipID, err := uuid.Parse(c.Param("membershipId"))
	if err != nil {
		return badRequest(c, "invalid membership id")
	}

	membership, err := h.Memberships.Cancel(c.Request().Context(), membershipID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "membership not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, membership)
}
