package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kavia-common/gym-backend/internal/models"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "user_role"
)

// JWTMiddleware проверяет access-токен и сохраняет user_id и роль в контексте.
func JWTMiddleware(manager *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := manager.ParseAccessToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			c.Set(ContextUserIDKey, userID)
			c.Set(ContextRoleKey, claims.Role)
			return next(c)
		}
	}
}

// RequireRole пропускает только пользователей с указанной ролью.
func RequireRole(role models.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, ok := RoleFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
			}

			if current != role {
				return echo.NewHTTPError(http.StatusForbidden, "not enough permissions")
			}

			return next(c)
		}
	}
}

// UserIDFromContext извлекает идентификатор пользователя из контекста.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(ContextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// RoleFromContext извлекает роль пользователя из контекста.
func RoleFromContext(c echo.Context) (models.UserRole, bool) {
	value := c.Get(ContextRoleKey)
	role, ok := value.(models.UserRole)
	return role, ok
}

// IsAdmin сообщает, является ли текущий пользователь администратором.
func IsAdmin(c echo.Context) bool {
	role, ok := RoleFromContext(c)
	return ok && role == models.RoleAdmin
}
