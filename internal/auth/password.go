package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt учитывает только первые 72 байта пароля.
const maxPasswordBytes = 72

// HashPassword хэширует пароль с использованием bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword сравнивает хэш с паролем через bcrypt.
func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password))
}

func truncatePassword(password string) []byte {
	raw := []byte(password)
	if len(raw) > maxPasswordBytes {
		raw = raw[:maxPasswordBytes]
	}
	return raw
}
