package router

import (
	"skillbridge/internal/adapter/api/handler"
	"skillbridge/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupWorkRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	workHandler := handler.GetWorkHandler()

	works := e.Group("/v1/works")
	works.Use(authMiddleware.Authenticate)

	works.POST("", workHandler.SubmitWork)
	works.GET("", workHandler.ListWorks)
	works.PATCH("/:id/review", workHandler.ReviewWork)
}
