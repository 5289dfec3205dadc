package router

import (
	"skillbridge/internal/adapter/api/handler"
	"skillbridge/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupSessionRouter initializes session lifecycle routes: negotiation,
// counter-offers, progress, completion and reports.
func SetupSessionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	sessionHandler := handler.GetSessionHandler()
	counterOfferHandler := handler.GetCounterOfferHandler()
	progressHandler := handler.GetProgressHandler()
	completionHandler := handler.GetCompletionHandler()
	reportHandler := handler.GetReportHandler()

	sessions := e.Group("/v1/sessions")
	sessions.Use(authMiddleware.Authenticate)

	sessions.POST("", sessionHandler.CreateSession, rateLimitMiddleware.Limit("create_session"))
	sessions.GET("", sessionHandler.ListSessions)
	sessions.GET("/between/:otherUserId", sessionHandler.ListSessionsBetweenUsers)
	sessions.GET("/:id", sessionHandler.GetSession)
	sessions.POST("/:id/respond", sessionHandler.RespondToSession)

	// Negotiation
	sessions.POST("/:id/counter-offer", counterOfferHandler.CreateCounterOffer)
	sessions.GET("/:id/counter-offer", counterOfferHandler.ListCounterOffers)

	// Progress tracking
	sessions.GET("/:id/progress", progressHandler.GetSessionProgress)
	sessions.PATCH("/:id/progress", progressHandler.UpdateProgress)

	// Completion agreement
	sessions.POST("/:id/completion", completionHandler.RequestCompletion)
	sessions.GET("/:id/completion-check", completionHandler.CheckCompletion)

	// Reports
	sessions.POST("/:id/reports", reportHandler.FileReport, rateLimitMiddleware.Limit("file_report"))
	sessions.GET("/:id/reports", reportHandler.ListSessionReports)

	counterOffers := e.Group("/v1/counter-offers")
	counterOffers.Use(authMiddleware.Authenticate)
	counterOffers.POST("/:id/respond", counterOfferHandler.RespondToCounterOffer)

	completions := e.Group("/v1/completions")
	completions.Use(authMiddleware.Authenticate)
	completions.PATCH("/:id/respond", completionHandler.RespondToCompletion)
}
