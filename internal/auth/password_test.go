package auth

import (
	"strings"
	"testing"
)

// TestHashAndComparePassword проверяет хэширование и проверку пароля.
func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ComparePassword(hash, "correct horse battery"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}
	if err := ComparePassword(hash, "wrong password"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

// TestHashPasswordLong проверяет усечение пароля до лимита bcrypt в 72 байта.
func TestHashPasswordLong(t *testing.T) {
	long := strings.Repeat("a", 100)

	hash, err := HashPassword(long)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Байты после 72-го не участвуют в хэше.
	if err := ComparePassword(hash, strings.Repeat("a", 72)); err != nil {
		t.Fatalf("expected truncated password to match, got %v", err)
	}
}
