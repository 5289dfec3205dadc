package handler

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
)

type WorkHandler struct {
	workUseCase *usecase.WorkUseCase
}

func NewWorkHandler(workUseCase *usecase.WorkUseCase) *WorkHandler {
	return &WorkHandler{workUseCase: workUseCase}
}

type workFileRequest struct {
	FileName  string `json:"file_name" validate:"required"`
	FileURL   string `json:"file_url" validate:"required"`
	FileTitle string `json:"file_title,omitempty"`
}

type submitWorkRequest struct {
	SessionID       string            `json:"session_id" validate:"required"`
	WorkDescription string            `json:"work_description,omitempty"`
	WorkURL         string            `json:"work_url,omitempty"`
	WorkFiles       []workFileRequest `json:"work_files,omitempty" validate:"max=5,dive"`
}

func (h *WorkHandler) SubmitWork(c echo.Context) error {
	var req submitWorkRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid session ID", err))
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	files := make([]usecase.WorkFileInput, 0, len(req.WorkFiles))
	for _, f := range req.WorkFiles {
		files = append(files, usecase.WorkFileInput{
			FileName:  f.FileName,
			FileURL:   f.FileURL,
			FileTitle: f.FileTitle,
		})
	}

	work, err := h.workUseCase.SubmitWork(c.Request().Context(), userID, usecase.SubmitWorkInput{
		SessionID:       sessionID,
		WorkDescription: req.WorkDescription,
		WorkURL:         req.WorkURL,
		WorkFiles:       files,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, work)
}

func (h *WorkHandler) ListWorks(c echo.Context) error {
	sessionID, err := primitive.ObjectIDFromHex(c.QueryParam("sessionId"))
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid session ID", err))
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	works, err := h.workUseCase.ListWorks(c.Request().Context(), sessionID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, works)
}

type reviewWorkRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

func (h *WorkHandler) ReviewWork(c echo.Context) error {
	workID, err := pathObjectID(c, "id", "Work")
	if err != nil {
		return response.Error(c, err)
	}

	var req reviewWorkRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	work, err := h.workUseCase.ReviewWork(c.Request().Context(), workID, userID, req.Action == "accept")
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, work)
}
