package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kavia-common/gym-backend/internal/database"
	"github.com/kavia-common/gym-backend/internal/models"
)

// TestResolveBookingStatus проверяет выбор статуса при свободных местах.
func TestResolveBookingStatus(t *testing.T) {
	if got := ResolveBookingStatus(5, 20); got != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", got)
	}

	if got := ResolveBookingStatus(19, 20); got != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed at last free slot, got %s", got)
	}
}

// TestResolveBookingStatusFull проверяет лист ожидания при заполненном занятии.
func TestResolveBookingStatusFull(t *testing.T) {
	if got := ResolveBookingStatus(20, 20); got != models.BookingStatusWaitlisted {
		t.Fatalf("expected waitlisted, got %s", got)
	}

	if got := ResolveBookingStatus(25, 20); got != models.BookingStatusWaitlisted {
		t.Fatalf("expected waitlisted over capacity, got %s", got)
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("expected pool, got %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool); err != nil {
		t.Fatalf("expected schema, got %v", err)
	}

	return pool
}

func seedMember(t *testing.T, users *UserRepository, label string) models.User {
	t.Helper()

	email := fmt.Sprintf("%s-%s@test.local", label, uuid.NewString())
	user, err := users.Create(context.Background(), email, "hash", label, models.RoleMember)
	if err != nil {
		t.Fatalf("expected member %s, got %v", label, err)
	}

	return user
}

// TestCancelPromotesOldestWaitlisted проверяет, что отмена подтвержденной
// записи продвигает самую раннюю запись из листа ожидания.
func TestCancelPromotesOldestWaitlisted(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	trainers := NewTrainerRepository(pool)
	classes := NewClassRepository(pool)
	bookings := NewBookingRepository(pool)

	trainerEmail := fmt.Sprintf("trainer-%s@test.local", uuid.NewString())
	trainerUser, err := users.Create(ctx, trainerEmail, "hash", "Trainer", models.RoleTrainer)
	if err != nil {
		t.Fatalf("expected trainer user, got %v", err)
	}

	trainer, err := trainers.Create(ctx, trainerUser.ID, nil, nil, nil)
	if err != nil {
		t.Fatalf("expected trainer profile, got %v", err)
	}

	start := time.Now().UTC().Add(24 * time.Hour)
	class, err := classes.Create(ctx, "Yoga", nil, trainer.ID, nil, 1, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("expected class, got %v", err)
	}

	first := seedMember(t, users, "first")
	second := seedMember(t, users, "second")
	third := seedMember(t, users, "third")

	confirmed, err := bookings.Book(ctx, first.ID, class.ID)
	if err != nil {
		t.Fatalf("expected first booking, got %v", err)
	}
	if confirmed.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", confirmed.Status)
	}

	// Пауза гарантирует различимый порядок created_at в листе ожидания.
	time.Sleep(20 * time.Millisecond)
	older, err := bookings.Book(ctx, second.ID, class.ID)
	if err != nil {
		t.Fatalf("expected second booking, got %v", err)
	}
	if older.Status != models.BookingStatusWaitlisted {
		t.Fatalf("expected waitlisted, got %s", older.Status)
	}

	time.Sleep(20 * time.Millisecond)
	newer, err := bookings.Book(ctx, third.ID, class.ID)
	if err != nil {
		t.Fatalf("expected third booking, got %v", err)
	}
	if newer.Status != models.BookingStatusWaitlisted {
		t.Fatalf("expected waitlisted, got %s", newer.Status)
	}

	cancelled, err := bookings.Cancel(ctx, confirmed.ID)
	if err != nil {
		t.Fatalf("expected cancel to succeed, got %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	promoted, err := bookings.GetByID(ctx, older.ID)
	if err != nil {
		t.Fatalf("expected promoted booking, got %v", err)
	}
	if promoted.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected oldest waitlisted to be confirmed, got %s", promoted.Status)
	}

	waiting, err := bookings.GetByID(ctx, newer.ID)
	if err != nil {
		t.Fatalf("expected newer booking, got %v", err)
	}
	if waiting.Status != models.BookingStatusWaitlisted {
		t.Fatalf("expected newer booking to stay waitlisted, got %s", waiting.Status)
	}
}

// TestCancelAlreadyCancelled проверяет повторную отмену той же записи.
func TestCancelAlreadyCancelled(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	users := NewUserRepository(pool)
	trainers := NewTrainerRepository(pool)
	classes := NewClassRepository(pool)
	bookings := NewBookingRepository(pool)

	trainerEmail := fmt.Sprintf("trainer-%s@test.local", uuid.NewString())
	trainerUser, err := users.Create(ctx, trainerEmail, "hash", "Trainer", models.RoleTrainer)
	if err != nil {
		t.Fatalf("expected trainer user, got %v", err)
	}

	trainer, err := trainers.Create(ctx, trainerUser.ID, nil, nil, nil)
	if err != nil {
		t.Fatalf("expected trainer profile, got %v", err)
	}

	start := time.Now().UTC().Add(24 * time.Hour)
	class, err := classes.Create(ctx, "Pilates", nil, trainer.ID, nil, 5, start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("expected class, got %v", err)
	}

	member := seedMember(t, users, "solo")
	booking, err := bookings.Book(ctx, member.ID, class.ID)
	if err != nil {
		t.Fatalf("expected booking, got %v", err)
	}

	if _, err := bookings.Cancel(ctx, booking.ID); err != nil {
		t.Fatalf("expected first cancel to succeed, got %v", err)
	}

	if _, err := bookings.Cancel(ctx, booking.ID); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid on repeated cancel, got %v", err)
	}
}
