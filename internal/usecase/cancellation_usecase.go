package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
)

type CancellationUseCase struct {
	cancellationRepo repository.CancellationRepository
	sessionRepo      repository.SessionRepository
}

func NewCancellationUseCase(
	cancellationRepo repository.CancellationRepository,
	sessionRepo repository.SessionRepository,
) *CancellationUseCase {
	return &CancellationUseCase{
		cancellationRepo: cancellationRepo,
		sessionRepo:      sessionRepo,
	}
}

type EvidenceInput struct {
	FileName string
	FileURL  string
}

type RequestCancellationInput struct {
	Reason      string
	Description string
	Evidence    []EvidenceInput
}

// RequestCancellation opens the dispute sub-process for an active session. At
// most one outstanding request may exist per session; the pre-check gives a
// clean 409 and the storage-level unique index closes the race behind it.
func (uc *CancellationUseCase) RequestCancellation(ctx context.Context, sessionID, initiatorID primitive.ObjectID, input RequestCancellationInput) (*entity.SessionCancel, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(initiatorID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	existing, err := uc.cancellationRepo.GetOutstandingBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("A cancellation request already exists for this session", nil)
	}

	evidence := make([]entity.EvidenceFile, 0, len(input.Evidence))
	for _, ev := range input.Evidence {
		evidence = append(evidence, entity.EvidenceFile{
			ID:       uuid.New().String(),
			FileName: ev.FileName,
			FileURL:  ev.FileURL,
		})
	}

	cancel := &entity.SessionCancel{
		SessionID:      sessionID,
		InitiatorID:    initiatorID,
		Reason:         input.Reason,
		Description:    input.Description,
		Evidence:       evidence,
		ResponseStatus: entity.CancelResponsePending,
		Resolution:     entity.CancelResolutionPending,
	}

	if err := uc.cancellationRepo.Create(ctx, cancel); err != nil {
		return nil, err
	}

	return cancel, nil
}

// ListUnacknowledged returns cancellation requests the caller has not yet
// seen. The caller's own initiations are excluded so the initiator is never
// notified about their own request.
func (uc *CancellationUseCase) ListUnacknowledged(ctx context.Context, userID primitive.ObjectID) ([]*entity.SessionCancel, error) {
	sessions, _, err := uc.sessionRepo.ListByUser(ctx, userID, "", 0, 0)
	if err != nil {
		return nil, err
	}

	sessionIDs := make([]primitive.ObjectID, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.ID)
	}

	return uc.cancellationRepo.ListUnacknowledgedFor(ctx, userID, sessionIDs)
}

// Acknowledge marks a cancellation request as registered by the counterpart.
// Re-acknowledging is rejected and leaves acknowledgedAt untouched.
func (uc *CancellationUseCase) Acknowledge(ctx context.Context, cancelID, userID primitive.ObjectID) (*entity.SessionCancel, error) {
	cancel, err := uc.cancellationRepo.GetByID(ctx, cancelID)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetByID(ctx, cancel.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}
	if cancel.InitiatorID == userID {
		return nil, errors.Forbidden("The initiator cannot acknowledge their own cancellation request", nil)
	}

	acknowledged, err := uc.cancellationRepo.Acknowledge(ctx, cancelID)
	if err != nil {
		return nil, err
	}
	if acknowledged == nil {
		return nil, errors.BadRequest("Cancellation request has already been acknowledged", nil)
	}

	return acknowledged, nil
}
