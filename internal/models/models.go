package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

type MembershipStatus string

type BookingStatus string

const (
	RoleAdmin   UserRole = "admin"
	RoleMember  UserRole = "member"
	RoleTrainer UserRole = "trainer"

	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusCancelled MembershipStatus = "cancelled"

	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusWaitlisted BookingStatus = "waitlisted"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type MembershipPlan struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DurationDays int       `json:"duration_days"`
	PriceCents   int64     `json:"price_cents"`
	Features     *string   `json:"features,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Membership struct {
	ID        uuid.UUID        `json:"id"`
	MemberID  uuid.UUID        `json:"member_id"`
	PlanID    uuid.UUID        `json:"plan_id"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	Status    MembershipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

type Trainer struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Bio            *string   `json:"bio,omitempty"`
	Specialties    *string   `json:"specialties,omitempty"`
	Certifications *string   `json:"certifications,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ClassSchedule struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	TrainerID   uuid.UUID `json:"trainer_id"`
	Room        *string   `json:"room,omitempty"`
	Capacity    int       `json:"capacity"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

type Booking struct {
	ID        uuid.UUID     `json:"id"`
	MemberID  uuid.UUID     `json:"member_id"`
	ClassID   uuid.UUID     `json:"class_id"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

type Attendance struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Attended  bool      `json:"attended"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

// ValidRole проверяет, что роль входит в список поддерживаемых.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleTrainer:
		return true
	}
	return false
}
