package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
	"skillbridge/pkg/utils"
)

type SessionHandler struct {
	sessionUseCase *usecase.SessionUseCase
}

func NewSessionHandler(sessionUseCase *usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{sessionUseCase: sessionUseCase}
}

type createSessionRequest struct {
	User2ID      string     `json:"user2_id" validate:"required"`
	Skill1ID     string     `json:"skill1_id" validate:"required"`
	Skill2ID     string     `json:"skill2_id" validate:"required"`
	Description1 string     `json:"description1" validate:"required"`
	Description2 string     `json:"description2" validate:"required"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	DueDate1     *time.Time `json:"due_date1,omitempty"`
	DueDate2     *time.Time `json:"due_date2,omitempty"`
}

func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
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

	user2ID, err := primitive.ObjectIDFromHex(req.User2ID)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid user2 ID", err))
	}
	skill1ID, err := primitive.ObjectIDFromHex(req.Skill1ID)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid skill1 ID", err))
	}
	skill2ID, err := primitive.ObjectIDFromHex(req.Skill2ID)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid skill2 ID", err))
	}

	session, err := h.sessionUseCase.CreateSession(c.Request().Context(), userID, usecase.CreateSessionInput{
		User2ID:      user2ID,
		Skill1ID:     skill1ID,
		Skill2ID:     skill2ID,
		Description1: req.Description1,
		Description2: req.Description2,
		StartDate:    req.StartDate,
		DueDate1:     req.DueDate1,
		DueDate2:     req.DueDate2,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, session)
}

func (h *SessionHandler) ListSessions(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	status := c.QueryParam("status")
	pagination := utils.GetPaginationParams(c)

	sessions, total, err := h.sessionUseCase.ListSessions(c.Request().Context(), userID, status, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, sessions, total, pagination.Page, pagination.PageSize)
}

func (h *SessionHandler) GetSession(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	session, err := h.sessionUseCase.GetSession(c.Request().Context(), userID, sessionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}

func (h *SessionHandler) ListSessionsBetweenUsers(c echo.Context) error {
	otherID, err := pathObjectID(c, "otherUserId", "User")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	sessions, err := h.sessionUseCase.ListSessionsBetweenUsers(c.Request().Context(), userID, otherID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sessions)
}

type respondSessionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject cancel"`
}

func (h *SessionHandler) RespondToSession(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	var req respondSessionRequest
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

	session, err := h.sessionUseCase.RespondToSession(c.Request().Context(), sessionID, userID, req.Action)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}
