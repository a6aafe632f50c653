package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/repository"
)

type ClassHandler struct {
	Classes  *repository.ClassRepository
	Trainers *repository.TrainerRepository
}

// NewClassHandler создает обработчик расписания занятий.
func NewClassHandler(classes *repository.ClassRepository, trainers *repository.TrainerRepository) *ClassHandler {
	return &ClassHandler{
		Classes:  classes,
		Trainers: trainers,
	}
}

type ClassRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description"`
	TrainerID   string  `json:"trainer_id" validate:"required,uuid4"`
	Room        *string `json:"room"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
	StartTime   string  `json:"start_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
}

type ClassUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	TrainerID   *string `json:"trainer_id" validate:"omitempty,uuid4"`
	Room        *string `json:"room"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
}

type ClassResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	TrainerID   uuid.UUID `json:"trainer_id"`
	Room        *string   `json:"room,omitempty"`
	Capacity    int       `json:"capacity"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	BookedCount int       `json:"booked_count"`
	CreatedAt   time.Time `json:"created_at"`
}

const defaultClassCapacity = 20

// parseClassTimes разбирает и проверяет интервал занятия.
func parseClassTimes(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time must be RFC3339")
	}

	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_time must be RFC3339")
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end time must be after start time")
	}

	return start, end, nil
}

// parseTimeFilter разбирает необязательный фильтр по времени из query-параметра.
func parseTimeFilter(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, fmt.Errorf("time filter must be RFC3339")
	}

	return &parsed, nil
}

// List возвращает занятия с опциональным фильтром по времени начала.
func (h *ClassHandler) List(c echo.Context) error {
	startAfter, err := parseTimeFilter(c.QueryParam("start_date"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	startBefore, err := parseTimeFilter(c.QueryParam("end_date"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	classes, err := h.Classes.List(c.Request().Context(), startAfter, startBefore)
	if err != nil {
		return serverError(c)
	}

	response := make([]ClassResponse, 0, len(classes))
	for _, cls := range classes {
		response = append(response, toClassResponse(cls))
	}

	return c.JSON(http.StatusOK, map[string][]ClassResponse{"classes": response})
}

// Get возвращает занятие по идентификатору.
func (h *ClassHandler) Get(c echo.Context) error {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		return badRequest(c, "invalid class id")
	}

	cls, err := h.Classes.GetByID(c.Request().Context(), classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "class not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toClassResponse(cls))
}

// Create создает занятие в расписании.
func (h *ClassHandler) Create(c echo.Context) error {
	var req ClassRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	trainerID, err := uuid.Parse(req.TrainerID)
	if err != nil {
		return badRequest(c, "invalid trainer id")
	}

	if _, err := h.Trainers.GetByID(c.Request().Context(), trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer not found")
		}
		return serverError(c)
	}

	startTime, endTime, err := parseClassTimes(req.StartTime, req.EndTime)
	if err != nil {
		return badRequest(c, err.Error())
	}

	capacity := defaultClassCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return badRequest(c, "title is required")
	}

	cls, err := h.Classes.Create(c.Request().Context(), title, req.Description, trainerID, req.Room, capacity, startTime, endTime)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toClassResponse(repository.ClassWithBookings{ClassSchedule: cls}))
}

// Update обновляет переданные поля занятия.
func (h *ClassHandler) Update(c echo.Context) error {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		return badRequest(c, "invalid class id")
	}

	var req ClassUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	update := repository.ClassUpdate{
		Title:       req.Title,
		Description: req.Description,
		Room:        req.Room,
		Capacity:    req.Capacity,
	}

	if req.TrainerID != nil {
		trainerID, err := uuid.Parse(*req.TrainerID)
		if err != nil {
			return badRequest(c, "invalid trainer id")
		}

		if _, err := h.Trainers.GetByID(c.Request().Context(), trainerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound(c, "trainer not found")
			}
			return serverError(c)
		}

		update.TrainerID = &trainerID
	}

	if req.StartTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return badRequest(c, "start_time must be RFC3339")
		}
		update.StartTime = &parsed
	}

	if req.EndTime != nil {
		parsed, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			return badRequest(c, "end_time must be RFC3339")
		}
		update.EndTime = &parsed
	}

	current, err := h.Classes.GetByID(c.Request().Context(), classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "class not found")
		}
		return serverError(c)
	}

	// Интервал проверяется по итоговым значениям, как и при создании.
	startTime := current.StartTime
	if update.StartTime != nil {
		startTime = *update.StartTime
	}
	endTime := current.EndTime
	if update.EndTime != nil {
		endTime = *update.EndTime
	}
	if !endTime.After(startTime) {
		return badRequest(c, "end time must be after start time")
	}

	cls, err := h.Classes.Update(c.Request().Context(), classID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "class not found")
		}
		return serverError(c)
	}

	updated, err := h.Classes.GetByID(c.Request().Context(), cls.ID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toClassResponse(updated))
}

// Delete удаляет занятие.
func (h *ClassHandler) Delete(c echo.Context) error {
	classID, err := uuid.Parse(c.Param("classId"))
	if err != nil {
		return badRequest(c, "invalid class id")
	}

	if err := h.Classes.Delete(c.Request().Context(), classID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "class not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func toClassResponse(cls repository.ClassWithBookings) ClassResponse {
	return ClassResponse{
		ID:          cls.ID,
		Title:       cls.Title,
		Description: cls.Description,
		TrainerID:   cls.TrainerID,
		Room:        cls.Room,
		Capacity:    cls.Capacity,
		StartTime:   cls.StartTime,
		EndTime:     cls.EndTime,
		BookedCount: cls.BookedCount,
		CreatedAt:   cls.CreatedAt,
	}
}
