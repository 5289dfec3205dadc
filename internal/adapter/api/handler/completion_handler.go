package handler

import (
	"github.com/labstack/echo/v4"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
)

type CompletionHandler struct {
	completionUseCase *usecase.CompletionUseCase
}

func NewCompletionHandler(completionUseCase *usecase.CompletionUseCase) *CompletionHandler {
	return &CompletionHandler{completionUseCase: completionUseCase}
}

type requestCompletionRequest struct {
	Message string `json:"message,omitempty"`
}

func (h *CompletionHandler) RequestCompletion(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	var req requestCompletionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	completion, err := h.completionUseCase.RequestCompletion(c.Request().Context(), sessionID, userID, req.Message)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, completion)
}

type respondCompletionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

func (h *CompletionHandler) RespondToCompletion(c echo.Context) error {
	completionID, err := pathObjectID(c, "id", "Completion request")
	if err != nil {
		return response.Error(c, err)
	}

	var req respondCompletionRequest
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

	completion, err := h.completionUseCase.RespondToCompletion(c.Request().Context(), completionID, userID, req.Action == "approve")
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, completion)
}

func (h *CompletionHandler) CheckCompletion(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	result, err := h.completionUseCase.CheckCompletion(c.Request().Context(), sessionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
