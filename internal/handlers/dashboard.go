package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/auth"
	"github.com/kavia-common/gym-backend/internal/repository"
)

type DashboardHandler struct {
	Dashboard   *repository.DashboardRepository
	Memberships *repository.MembershipRepository
	Plans       *repository.PlanRepository
	Users       *repository.UserRepository
}

// NewDashboardHandler создает обработчик сводных панелей.
func NewDashboardHandler(dashboard *repository.DashboardRepository, memberships *repository.MembershipRepository, plans *repository.PlanRepository, users *repository.UserRepository) *DashboardHandler {
	return &DashboardHandler{
		Dashboard:   dashboard,
		Memberships: memberships,
		Plans:       plans,
		Users:       users,
	}
}

type AdminDashboardResponse struct {
	TotalMembers        int   `json:"total_members"`
	ActiveMemberships   int   `json:"active_memberships"`
	TotalTrainers       int   `json:"total_trainers"`
	UpcomingClasses     int   `json:"upcoming_classes"`
	MonthlyBookings     int   `json:"monthly_bookings"`
	MonthlyRevenueCents int64 `json:"monthly_revenue_cents"`
	RecentBookingsCount int   `json:"recent_bookings_count"`
}

type MembershipInfo struct {
	PlanName      string    `json:"plan_name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        string    `json:"status"`
	DaysRemaining int       `json:"days_remaining"`
}

type UpcomingClassInfo struct {
	BookingID  string    `json:"booking_id"`
	ClassTitle string    `json:"class_title"`
	StartTime  time.Time `json:"start_time"`
	Room       *string   `json:"room,omitempty"`
}

type MemberDashboardResponse struct {
	Membership      *MembershipInfo     `json:"membership"`
	UpcomingClasses []UpcomingClassInfo `json:"upcoming_classes"`
	TotalBookings   int                 `json:"total_bookings"`
	AttendedClasses int                 `json:"attended_classes"`
}

type TrainerClassInfo struct {
	ClassID   string    `json:"class_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Room      *string   `json:"room,omitempty"`
	Booked    int       `json:"booked"`
	Capacity  int       `json:"capacity"`
}

type TrainerDashboardResponse struct {
	TrainerName     string             `json:"trainer_name"`
	Specialties     *string            `json:"specialties,omitempty"`
	UpcomingClasses []TrainerClassInfo `json:"upcoming_classes"`
	TotalClasses    int                `json:"total_classes"`
	TotalBookings   int                `json:"total_bookings"`
}

// Admin возвращает метрики всей системы.
func (h *DashboardHandler) Admin(c echo.Context) error {
	metrics, err := h.Dashboard.AdminMetrics(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, AdminDashboardResponse{
		TotalMembers:        metrics.TotalMembers,
		ActiveMemberships:   metrics.ActiveMemberships,
		TotalTrainers:       metrics.TotalTrainers,
		UpcomingClasses:     metrics.UpcomingClasses,
		MonthlyBookings:     metrics.MonthlyBookings,
		MonthlyRevenueCents: metrics.MonthlyRevenueCents,
		RecentBookingsCount: metrics.RecentBookingsCount,
	})
}

// Member возвращает персональную сводку участника.
func (h *DashboardHandler) Member(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ctx := c.Request().Context()
	now := time.Now().UTC()

	var membershipInfo *MembershipInfo

	membership, err := h.Memberships.ActiveByMember(ctx, userID)
	switch {
	case err == nil:
		planName := "Unknown"
		if plan, planErr := h.Plans.GetByID(ctx, membership.PlanID); planErr == nil {
			planName = plan.Name
		}

		membershipInfo = &MembershipInfo{
			PlanName:      planName,
			StartDate:     membership.StartDate,
			EndDate:       membership.EndDate,
			Status:        string(membership.Status),
			DaysRemaining: int(membership.EndDate.Sub(now).Hours() / 24),
		}
	case errors.Is(err, repository.ErrNotFound):
		// Участник без действующего абонемента видит пустую сводку.
	default:
		return serverError(c)
	}

	upcoming, err := h.Dashboard.MemberUpcoming(ctx, userID, now, 5)
	if err != nil {
		return serverError(c)
	}

	upcomingInfo := make([]UpcomingClassInfo, 0, len(upcoming))
	for _, entry := range upcoming {
		upcomingInfo = append(upcomingInfo, UpcomingClassInfo{
			BookingID:  entry.BookingID.String(),
			ClassTitle: entry.ClassTitle,
			StartTime:  entry.StartTime,
			Room:       entry.Room,
		})
	}

	metrics, err := h.Dashboard.MemberMetrics(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, MemberDashboardResponse{
		Membership:      membershipInfo,
		UpcomingClasses: upcomingInfo,
		TotalBookings:   metrics.TotalBookings,
		AttendedClasses: metrics.AttendedClasses,
	})
}

// Trainer возвращает сводку расписания тренера.
func (h *DashboardHandler) Trainer(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	ctx := c.Request().Context()
	now := time.Now().UTC()

	trainer, err := h.Dashboard.TrainerByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trainer profile not found")
		}
		return serverError(c)
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return serverError(c)
	}

	upcoming, err := h.Dashboard.TrainerUpcoming(ctx, trainer.ID, now, 10)
	if err != nil {
		return serverError(c)
	}

	classesInfo := make([]TrainerClassInfo, 0, len(upcoming))
	for _, entry := range upcoming {
		classesInfo = append(classesInfo, TrainerClassInfo{
			ClassID:   entry.ClassID.String(),
			Title:     entry.Title,
			StartTime: entry.StartTime,
			EndTime:   entry.EndTime,
			Room:      entry.Room,
			Booked:    entry.Booked,
			Capacity:  entry.Capacity,
		})
	}

	metrics, err := h.Dashboard.TrainerMetrics(ctx, trainer.ID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TrainerDashboardResponse{
		TrainerName:     user.FullName,
		Specialties:     trainer.Specialties,
		UpcomingClasses: classesInfo,
		TotalClasses:    metrics.TotalClasses,
		TotalBookings:   metrics.TotalBookings,
	})
}
