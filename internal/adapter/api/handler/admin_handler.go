package handler

import (
	"github.com/labstack/echo/v4"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
	"skillbridge/pkg/utils"
)

type AdminHandler struct {
	reportUseCase     *usecase.ReportUseCase
	completionUseCase *usecase.CompletionUseCase
}

func NewAdminHandler(
	reportUseCase *usecase.ReportUseCase,
	completionUseCase *usecase.CompletionUseCase,
) *AdminHandler {
	return &AdminHandler{
		reportUseCase:     reportUseCase,
		completionUseCase: completionUseCase,
	}
}

func (h *AdminHandler) ListReports(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	status := c.QueryParam("status")

	reports, total, err := h.reportUseCase.ListReports(c.Request().Context(), status, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, reports, total, pagination.Page, pagination.PageSize)
}

func (h *AdminHandler) GetReport(c echo.Context) error {
	reportID, err := pathObjectID(c, "id", "Report")
	if err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.GetReport(c.Request().Context(), reportID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *AdminHandler) NotifyReport(c echo.Context) error {
	reportID, err := pathObjectID(c, "id", "Report")
	if err != nil {
		return response.Error(c, err)
	}

	kickoff, err := h.reportUseCase.StartInvestigation(c.Request().Context(), reportID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, kickoff)
}

type resolveReportRequest struct {
	Action  string `json:"action" validate:"required,oneof=warn suspend"`
	Message string `json:"message" validate:"required,max=1000"`
}

func (h *AdminHandler) ResolveReport(c echo.Context) error {
	reportID, err := pathObjectID(c, "id", "Report")
	if err != nil {
		return response.Error(c, err)
	}

	var req resolveReportRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	adminID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	report, err := h.reportUseCase.ResolveReport(c.Request().Context(), reportID, adminID, req.Action, req.Message)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, report)
}

func (h *AdminHandler) FixAllCompletions(c echo.Context) error {
	result, err := h.completionUseCase.FixAllCompletions(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
