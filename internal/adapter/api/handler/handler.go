package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
)

var (
	sessionHandler      *SessionHandler
	counterOfferHandler *CounterOfferHandler
	progressHandler     *ProgressHandler
	cancellationHandler *CancellationHandler
	workHandler         *WorkHandler
	completionHandler   *CompletionHandler
	reportHandler       *ReportHandler
	adminHandler        *AdminHandler
	healthHandler       *HealthHandler
)

func Setup(
	sessionUseCase *usecase.SessionUseCase,
	counterOfferUseCase *usecase.CounterOfferUseCase,
	progressUseCase *usecase.ProgressUseCase,
	cancellationUseCase *usecase.CancellationUseCase,
	workUseCase *usecase.WorkUseCase,
	completionUseCase *usecase.CompletionUseCase,
	reportUseCase *usecase.ReportUseCase,
	mongoClient *mongo.Client,
) {
	sessionHandler = NewSessionHandler(sessionUseCase)
	counterOfferHandler = NewCounterOfferHandler(counterOfferUseCase)
	progressHandler = NewProgressHandler(progressUseCase)
	cancellationHandler = NewCancellationHandler(cancellationUseCase)
	workHandler = NewWorkHandler(workUseCase)
	completionHandler = NewCompletionHandler(completionUseCase)
	reportHandler = NewReportHandler(reportUseCase)
	adminHandler = NewAdminHandler(reportUseCase, completionUseCase)
	healthHandler = NewHealthHandler(mongoClient)
}

func GetSessionHandler() *SessionHandler {
	return sessionHandler
}

func GetCounterOfferHandler() *CounterOfferHandler {
	return counterOfferHandler
}

func GetProgressHandler() *ProgressHandler {
	return progressHandler
}

func GetCancellationHandler() *CancellationHandler {
	return cancellationHandler
}

func GetWorkHandler() *WorkHandler {
	return workHandler
}

func GetCompletionHandler() *CompletionHandler {
	return completionHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	uid, ok := c.Get("uid").(string)
	if !ok {
		return primitive.NilObjectID, errors.Unauthorized("Authentication required", nil)
	}

	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return primitive.NilObjectID, errors.Unauthorized("Invalid user identity", err)
	}
	return id, nil
}

func pathObjectID(c echo.Context, param, resource string) (primitive.ObjectID, error) {
	raw := c.Param(param)
	if raw == "" {
		return primitive.NilObjectID, errors.BadRequest(fmt.Sprintf("%s ID is required", resource), nil)
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errors.BadRequest(fmt.Sprintf("Invalid %s ID", resource), err)
	}
	return id, nil
}
