package router

import (
	"skillbridge/internal/adapter/api/handler"
	"skillbridge/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCancellationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	cancellationHandler := handler.GetCancellationHandler()

	sessions := e.Group("/v1/sessions")
	sessions.Use(authMiddleware.Authenticate)
	sessions.POST("/:id/cancel-request", cancellationHandler.RequestCancellation, rateLimitMiddleware.Limit("cancel_request"))

	cancels := e.Group("/v1/cancel-requests")
	cancels.Use(authMiddleware.Authenticate)
	cancels.GET("", cancellationHandler.ListUnacknowledged)
	cancels.PATCH("/:id/acknowledge", cancellationHandler.Acknowledge)
}
