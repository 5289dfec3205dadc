package handler

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
)

type ReportHandler struct {
	reportUseCase *usecase.ReportUseCase
}

func NewReportHandler(reportUseCase *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase}
}

type fileReportRequest struct {
	ReportedUser string            `json:"reported_user" validate:"required"`
	Reason       string            `json:"reason" validate:"required"`
	Description  string            `json:"description" validate:"required"`
	Evidence     []evidenceRequest `json:"evidence,omitempty" validate:"dive"`
}

func (h *ReportHandler) FileReport(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	var req fileReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reportedUser, err := primitive.ObjectIDFromHex(req.ReportedUser)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid reported user ID", err))
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

	report, err := h.reportUseCase.FileReport(c.Request().Context(), sessionID, userID, usecase.FileReportInput{
		ReportedUser: reportedUser,
		Reason:       req.Reason,
		Description:  req.Description,
		Evidence:     evidence,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, report)
}

func (h *ReportHandler) ListSessionReports(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	role, _ := c.Get("role").(string)

	reports, err := h.reportUseCase.ListSessionReports(c.Request().Context(), sessionID, userID, role == "admin")
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, reports)
}
