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

type BookingHandler struct {
	Bookings *repository.BookingRepository
}

// NewBookingHandler создает обработчик записей на занятия.
func NewBookingHandler(bookings *repository.BookingRepository) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

type BookingRequest struct {
	ClassID string `json:"class_id" validate:"required,uuid4"`
}

type AttendanceRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Attended  bool    `json:"attended"`
	Notes     *string `json:"notes"`
}

// List возвращает записи: администратору все, участнику свои.
func (h *BookingHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var bookings []models.Booking
	var err error

	if auth.IsAdmin(c) {
		bookings, err = h.Bookings.List(c.Request().Context())
	} else {
		bookings, err = h.Bookings.ListByMember(c.Request().Context(), userID)
	}
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Booking{"bookings": bookings})
}

// Get возвращает запись владельцу или администратору.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	booking, err := h.Bookings.GetByID(c.Request().Context(), bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "booking not found")
		}
		return serverError(c)
	}

	if !auth.IsAdmin(c) && booking.MemberID != userID {
		return forbidden(c)
	}

	return c.JSON(http.StatusOK, booking)
}

// Create записывает текущего пользователя на занятие. При заполненном
// занятии запись попадает в лист ожидания.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return badRequest(c, "invalid class id")
	}

	booking, err := h.Bookings.Book(c.Request().Context(), userID, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "class not found")
		}
		if errors.Is(err, repository.ErrConflict) {
			return badRequest(c, "you already have a booking for this class")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, booking)
}

// Cancel отменяет запись владельца или любую запись для администратора.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	booking, err := h.Bookings.GetByID(c.Request().Context(), bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "booking not found")
		}
		return serverError(c)
	}

	if !auth.IsAdmin(c) && booking.MemberID != userID {
		return forbidden(c)
	}

	cancelled, err := h.Bookings.Cancel(c.Request().Context(), bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "booking is already cancelled")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, cancelled)
}

// MarkAttendance сохраняет отметку о посещении занятия.
func (h *BookingHandler) MarkAttendance(c echo.Context) error {
	var req AttendanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return badRequest(c, "invalid booking id")
	}

	attendance, err := h.Bookings.MarkAttendance(c.Request().Context(), bookingID, req.Attended, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "booking not found")
		}
		if errors.Is(err, repository.ErrConflict) {
			return badRequest(c, "attendance already recorded for this booking")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, attendance)
}
