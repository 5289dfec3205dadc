package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/repository"
	"skillbridge/internal/infrastructure/auth"
	"skillbridge/pkg/logger"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.jwtManager.VerifyToken(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)

		// Presence bookkeeping feeds report snapshots; a failed touch never
		// blocks the request.
		if uid, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			if err := m.userRepo.TouchLastActive(c.Request().Context(), uid); err != nil {
				logger.Debug("Failed to touch last active for %s: %v", claims.UserID, err)
			}
		}

		return next(c)
	}
}
