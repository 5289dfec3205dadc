package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
)

type CounterOfferUseCase struct {
	counterOfferRepo repository.CounterOfferRepository
	sessionRepo      repository.SessionRepository
}

func NewCounterOfferUseCase(
	counterOfferRepo repository.CounterOfferRepository,
	sessionRepo repository.SessionRepository,
) *CounterOfferUseCase {
	return &CounterOfferUseCase{
		counterOfferRepo: counterOfferRepo,
		sessionRepo:      sessionRepo,
	}
}

type CreateCounterOfferInput struct {
	Skill1ID     primitive.ObjectID
	Skill2ID     primitive.ObjectID
	Description1 string
	Description2 string
	StartDate    time.Time
	Message      string
}

// CreateCounterOffer attaches an alternative proposal to a still-undecided
// session and flags the original as amended. The original session's own status
// does not move; a participant acts on the counter separately.
func (uc *CounterOfferUseCase) CreateCounterOffer(ctx context.Context, sessionID, userID primitive.ObjectID, input CreateCounterOfferInput) (*entity.SessionCounterOffer, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	if !session.Undecided() {
		return nil, errors.BadRequest("Session has already been decided", nil)
	}

	offer := &entity.SessionCounterOffer{
		OriginalSessionID: sessionID,
		CounterOfferedBy:  userID,
		Skill1ID:          input.Skill1ID,
		Skill2ID:          input.Skill2ID,
		Description1:      input.Description1,
		Description2:      input.Description2,
		StartDate:         input.StartDate,
		Message:           input.Message,
		Status:            entity.CounterOfferStatusPending,
	}

	if err := uc.counterOfferRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.MarkAmended(ctx, sessionID); err != nil {
		return nil, err
	}

	return offer, nil
}

func (uc *CounterOfferUseCase) ListCounterOffers(ctx context.Context, sessionID, userID primitive.ObjectID) ([]*entity.SessionCounterOffer, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	return uc.counterOfferRepo.ListBySession(ctx, sessionID)
}

// RespondToCounterOffer lets the party that did not make the counter accept or
// reject it. Acceptance rewrites the original session's terms from the counter
// and activates it.
func (uc *CounterOfferUseCase) RespondToCounterOffer(ctx context.Context, offerID, userID primitive.ObjectID, accept bool) (*entity.SessionCounterOffer, error) {
	offer, err := uc.counterOfferRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetByID(ctx, offer.OriginalSessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}
	if userID == offer.CounterOfferedBy {
		return nil, errors.Forbidden("You cannot respond to your own counter-offer", nil)
	}

	if offer.Status != entity.CounterOfferStatusPending {
		return nil, errors.BadRequest("Counter-offer has already been decided", nil)
	}

	if accept {
		updated, err := uc.sessionRepo.ApplyCounterOffer(ctx, session.ID, offer)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, errors.BadRequest("Session has already been decided", nil)
		}
	}

	status := entity.CounterOfferStatusRejected
	if accept {
		status = entity.CounterOfferStatusAccepted
	}

	responded, err := uc.counterOfferRepo.Respond(ctx, offerID, status)
	if err != nil {
		return nil, err
	}
	if responded == nil {
		return nil, errors.Conflict("Counter-offer was decided concurrently", nil)
	}

	return responded, nil
}
