package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/usecase"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/response"
)

type CounterOfferHandler struct {
	counterOfferUseCase *usecase.CounterOfferUseCase
}

func NewCounterOfferHandler(counterOfferUseCase *usecase.CounterOfferUseCase) *CounterOfferHandler {
	return &CounterOfferHandler{counterOfferUseCase: counterOfferUseCase}
}

type createCounterOfferRequest struct {
	Skill1ID     string    `json:"skill1_id" validate:"required"`
	Skill2ID     string    `json:"skill2_id" validate:"required"`
	Description1 string    `json:"description1" validate:"required"`
	Description2 string    `json:"description2" validate:"required"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	Message      string    `json:"message,omitempty"`
}

func (h *CounterOfferHandler) CreateCounterOffer(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	var req createCounterOfferRequest
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

	skill1ID, err := primitive.ObjectIDFromHex(req.Skill1ID)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid skill1 ID", err))
	}
	skill2ID, err := primitive.ObjectIDFromHex(req.Skill2ID)
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid skill2 ID", err))
	}

	offer, err := h.counterOfferUseCase.CreateCounterOffer(c.Request().Context(), sessionID, userID, usecase.CreateCounterOfferInput{
		Skill1ID:     skill1ID,
		Skill2ID:     skill2ID,
		Description1: req.Description1,
		Description2: req.Description2,
		StartDate:    req.StartDate,
		Message:      req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offer)
}

func (h *CounterOfferHandler) ListCounterOffers(c echo.Context) error {
	sessionID, err := pathObjectID(c, "id", "Session")
	if err != nil {
		return response.Error(c, err)
	}

	userID, err := currentUserID(c)
	if err != nil {
		return response.Error(c, err)
	}

	offers, err := h.counterOfferUseCase.ListCounterOffers(c.Request().Context(), sessionID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offers)
}

type respondCounterOfferRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

func (h *CounterOfferHandler) RespondToCounterOffer(c echo.Context) error {
	offerID, err := pathObjectID(c, "id", "Counter-offer")
	if err != nil {
		return response.Error(c, err)
	}

	var req respondCounterOfferRequest
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

	offer, err := h.counterOfferUseCase.RespondToCounterOffer(c.Request().Context(), offerID, userID, req.Action == "accept")
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}
