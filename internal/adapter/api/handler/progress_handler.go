package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"skillbridge/internal/domain/repository"
	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
)

type ProgressHandler struct {
	progressUseCase *usecase.ProgressUseCase
}

func NewProgressHandler(progressUseCase *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{progressUseCase: progressUseCase}
}

func (h *ProgressHandler) GetSessionProgress(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	progress, err := h.progressUseCase.GetSessionProgress(c.Request().Context(), sessionID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}

type updateProgressRequest struct {
	CompletionPercentage *int       `json:"completion_percentage,omitempty"`
	Status               *string    `json:"status,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
}

func (h *ProgressHandler) UpdateProgress(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProgressRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	progress, err := h.progressUseCase.UpdateProgress(c.Request().Context(), sessionID, userID, repository.ProgressUpdate{
		CompletionPercentage: req.CompletionPercentage,
		Status:               req.Status,
		Notes:                req.Notes,
		DueDate:              req.DueDate,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, progress)
}
