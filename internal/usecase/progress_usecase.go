package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
)

type ProgressUseCase struct {
	progressRepo repository.ProgressRepository
	sessionRepo  repository.SessionRepository
}

func NewProgressUseCase(
	progressRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
) *ProgressUseCase {
	return &ProgressUseCase{
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
	}
}

func (uc *ProgressUseCase) GetSessionProgress(ctx context.Context, sessionID, userID primitive.ObjectID) ([]*entity.SessionProgress, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	return uc.progressRepo.ListBySession(ctx, sessionID)
}

// UpdateProgress upserts the caller's own progress document. Participants only
// describe their own side; nothing here aggregates into session status, which
// is driven by the completion-request path instead.
func (uc *ProgressUseCase) UpdateProgress(ctx context.Context, sessionID, userID primitive.ObjectID, update repository.ProgressUpdate) (*entity.SessionProgress, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	if update.CompletionPercentage != nil && !entity.ValidCompletionPercentage(*update.CompletionPercentage) {
		return nil, errors.BadRequest("Completion percentage must be between 0 and 100", nil)
	}
	if update.Status != nil && !entity.ValidProgressStatus(*update.Status) {
		return nil, errors.BadRequest("Invalid progress status", nil)
	}

	return uc.progressRepo.Upsert(ctx, sessionID, userID, update)
}
