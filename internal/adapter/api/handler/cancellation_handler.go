package handler

import (
	"github.com/labstack/echo/v4"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
)

type CancellationHandler struct {
	cancellationUseCase *usecase.CancellationUseCase
}

func NewCancellationHandler(cancellationUseCase *usecase.CancellationUseCase) *CancellationHandler {
	return &CancellationHandler{cancellationUseCase: cancellationUseCase}
}

type evidenceRequest struct {
	FileName string `json:"file_name" validate:"required"`
	FileURL  string `json:"file_url" validate:"required"`
}

type requestCancellationRequest struct {
	Reason      string            `json:"reason" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Evidence    []evidenceRequest `json:"evidence,omitempty" validate:"dive"`
}

func (h *CancellationHandler) RequestCancellation(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	var req requestCancellationRequest
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

	evidence := make([]usecase.EvidenceInput, 0, len(req.Evidence))
	for _, ev := range req.Evidence {
		evidence = append(evidence, usecase.EvidenceInput{
			FileName: ev.FileName,
			FileURL:  ev.FileURL,
		})
	}

	cancel, err := h.cancellationUseCase.RequestCancellation(c.Request().Context(), sessionID, userID, usecase.RequestCancellationInput{
		Reason:      req.Reason,
		Description: req.Description,
		Evidence:    evidence,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, cancel)
}

func (h *CancellationHandler) ListUnacknowledged(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	cancels, err := h.cancellationUseCase.ListUnacknowledged(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cancels)
}

func (h *CancellationHandler) Acknowledge(c echo.Context) error {
	cancelID, err := pathObjectID(c, "id", "Cancellation request")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	cancel, err := h.cancellationUseCase.Acknowledge(c.Request().Context(), cancelID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cancel)
}
