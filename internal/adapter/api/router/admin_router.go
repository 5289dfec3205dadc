package router

import (
	"skillbridge/internal/adapter/api/handler"
	"skillbridge/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAdminRouter initializes moderation routes: report triage and the
// completion reconciliation sweep. All of them require an admin role.
func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/reports", adminHandler.ListReports)
	admin.GET("/reports/:id", adminHandler.GetReport)
	admin.POST("/reports/:id/notify", adminHandler.NotifyReport)
	admin.PATCH("/reports/:id/action", adminHandler.ResolveReport)

	admin.POST("/sessions/fix-completions", adminHandler.FixAllCompletions)
}
