package router

import (
	"skillbridge/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupSessionRouter(e, authMiddleware, rateLimitMiddleware)
	SetupCancellationRouter(e, authMiddleware, rateLimitMiddleware)
	SetupWorkRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
