package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/auth"
	"github.com/kavia-common/gym-backend/internal/models"
	"github.com/kavia-common/gym-backend/internal/repository"
)

type TrainerHandler struct {
	Trainers  *repository.TrainerRepository
	Users     *repository.UserRepository
	ClassRepo *repository.ClassRepository
}

// NewTrainerHandler создает обработчик профилей тренеров.
func NewTrainerHandler(trainers *repository.TrainerRepository, users *repository.UserRepository, classes *repository.ClassRepository) *TrainerHandler {
	return &TrainerHandler{
		Trainers:  trainers,
		Users:     users,
		ClassRepo: classes,
	}
}

type TrainerCreateRequest struct {
	UserID         string  `json:"user_id" validate:"required,uuid4"`
	Bio            *string `json:"bio"`
	Specialties    *string `json:"specialties"`
	Certifications *string `json:"certifications"`
}

type TrainerUpdateRequest struct {
	Bio            *string `json:"bio"`
	Specialties    *string `json:"specialties"`
	Certifications *string `json:"certifications"`
}

// List возвращает все профили тренеров.
func (h *TrainerHandler) List(c echo.Context) error {
	trainers, err := h.Trainers.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Trainer{"trainers": trainers})
}

// Get возвращает профиль тренера.
func (h *TrainerHandler) Get(c echo.Context) error {
	trainerID, err := uuid.Parse(c.Param("trainerId"))
	if err != nil {
		return badRequest(c, "invalid trainer id")
	}

	trainer, err := h.Trainers.GetByID(c.Request().Context(), trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, trainer)
}

// Classes возвращает занятия тренера.
func (h *TrainerHandler) Classes(c echo.Context) error {
	trainerID, err := uuid.Parse(c.Param("trainerId"))
	if err != nil {
		return badRequest(c, "invalid trainer id")
	}

	if _, err := h.Trainers.GetByID(c.Request().Context(), trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer not found")
		}
		return serverError(c)
	}

	classes, err := h.ClassRepo.ListByTrainer(c.Request().Context(), trainerID)
	if err != nil {
		return serverError(c)
	}

	response := make([]ClassResponse, 0, len(classes))
	for _, cls := range classes {
		response = append(response, toClassResponse(cls))
	}

	return c.JSON(http.StatusOK, map[string][]ClassResponse{"classes": response})
}

// Create создает профиль тренера для пользователя с ролью trainer.
func (h *TrainerHandler) Create(c echo.Context) error {
	var req TrainerCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}

	if user.Role != models.RoleTrainer {
		return badRequest(c, "user must have trainer role")
	}

	trainer, err := h.Trainers.Create(c.Request().Context(), userID, req.Bio, req.Specialties, req.Certifications)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "trainer profile already exists for this user")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, trainer)
}

// Update обновляет профиль: администратор любой, тренер только свой.
func (h *TrainerHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	trainerID, err := uuid.Parse(c.Param("trainerId"))
	if err != nil {
		return badRequest(c, "invalid trainer id")
	}

	trainer, err := h.Trainers.GetByID(c.Request().Context(), trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer not found")
		}
		return serverError(c)
	}

	if !auth.IsAdmin(c) && trainer.UserID != userID {
		return forbidden(c)
	}

	var req TrainerUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	updated, err := h.Trainers.Update(c.Request().Context(), trainerID, repository.TrainerUpdate{
		Bio:            req.Bio,
		Specialties:    req.Specialties,
		Certifications: req.Certifications,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет профиль тренера.
func (h *TrainerHandler) Delete(c echo.Context) error {
	trainerID, err := uuid.Parse(c.Param("trainerId"))
	if err != nil {
		return badRequest(c, "invalid trainer id")
	}

	if err := h.Trainers.Delete(c.Request().Context(), trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
