package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kavia-common/gym-backend/internal/models"
)

// TestTokenPairRoundtrip проверяет выпуск и разбор пары токенов.
func TestTokenPairRoundtrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "gym-backend", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()
	refreshID := uuid.New()

	pair, err := manager.NewTokenPair(userID, models.RoleTrainer, refreshID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := manager.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("expected valid access token, got %v", err)
	}
	if claims.Subject != userID.String() {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != models.RoleTrainer {
		t.Fatalf("unexpected role: %s", claims.Role)
	}

	refreshClaims, err := manager.ParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("expected valid refresh token, got %v", err)
	}
	if refreshClaims.ID != refreshID.String() {
		t.Fatalf("unexpected refresh token id: %s", refreshClaims.ID)
	}
}

// TestTokenTypeMismatch проверяет отказ при подмене типа токена.
func TestTokenTypeMismatch(t *testing.T) {
	manager := NewTokenManager("test-secret", "gym-backend", 15*time.Minute, 24*time.Hour)

	pair, err := manager.NewTokenPair(uuid.New(), models.RoleMember, uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseAccessToken(pair.RefreshToken); err == nil {
		t.Fatal("expected error parsing refresh token as access")
	}
	if _, err := manager.ParseRefreshToken(pair.AccessToken); err == nil {
		t.Fatal("expected error parsing access token as refresh")
	}
}

// TestTokenWrongSecret проверяет отказ при неверном секрете.
func TestTokenWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", "gym-backend", 15*time.Minute, 24*time.Hour)
	other := NewTokenManager("other-secret", "gym-backend", 15*time.Minute, 24*time.Hour)

	pair, err := manager.NewTokenPair(uuid.New(), models.RoleAdmin, uuid.New())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := other.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

// TestHashTokenCompare проверяет сравнение хэша refresh-токена.
func TestHashTokenCompare(t *testing.T) {
	hash := HashToken("some-refresh-token")

	if !CompareTokenHash(hash, "some-refresh-token") {
		t.Fatal("expected hash to match token")
	}
	if CompareTokenHash(hash, "another-token") {
		t.Fatal("expected hash mismatch")
	}
}
