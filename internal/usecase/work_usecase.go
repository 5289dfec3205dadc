package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
)

type WorkUseCase struct {
	workRepo    repository.WorkRepository
	sessionRepo repository.SessionRepository
}

func NewWorkUseCase(
	workRepo repository.WorkRepository,
	sessionRepo repository.SessionRepository,
) *WorkUseCase {
	return &WorkUseCase{
		workRepo:    workRepo,
		sessionRepo: sessionRepo,
	}
}

type WorkFileInput struct {
	FileName  string
	FileURL   string
	FileTitle string
}

type SubmitWorkInput struct {
	SessionID       primitive.ObjectID
	WorkDescription string
	WorkURL         string
	WorkFiles       []WorkFileInput
}

// SubmitWork records a deliverable from the provider to the counterpart. A
// submission needs either the legacy single URL or one to five structured
// files; files without a title get one derived from the filename stem.
func (uc *WorkUseCase) SubmitWork(ctx context.Context, providerID primitive.ObjectID, input SubmitWorkInput) (*entity.Work, error) {
	session, err := uc.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(providerID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}
	if session.Status != entity.SessionStatusActive {
		return nil, errors.BadRequest("Work can only be submitted to an active session", nil)
	}

	if len(input.WorkFiles) > entity.MaxWorkFiles {
		return nil, errors.BadRequest("A submission may include at most 5 files", nil)
	}
	if input.WorkURL == "" && len(input.WorkFiles) == 0 {
		return nil, errors.BadRequest("A submission needs a work URL or at least one file", nil)
	}

	files := make([]entity.WorkFile, 0, len(input.WorkFiles))
	for _, f := range input.WorkFiles {
		if f.FileName == "" || f.FileURL == "" {
			return nil, errors.BadRequest("Each file needs a name and a URL", nil)
		}
		title := f.FileTitle
		if title == "" {
			title = entity.DeriveFileTitle(f.FileName)
		}
		files = append(files, entity.WorkFile{
			ID:        uuid.New().String(),
			FileName:  f.FileName,
			FileURL:   f.FileURL,
			FileTitle: title,
		})
	}

	work := &entity.Work{
		SessionID:        input.SessionID,
		ProvideUserID:    providerID,
		ReceiveUserID:    session.Counterpart(providerID),
		WorkURL:          input.WorkURL,
		WorkFiles:        files,
		WorkDescription:  input.WorkDescription,
		ProvideDate:      time.Now(),
		AcceptanceStatus: entity.WorkStatusPending,
	}

	if err := uc.workRepo.Create(ctx, work); err != nil {
		return nil, err
	}

	return work, nil
}

func (uc *WorkUseCase) ListWorks(ctx context.Context, sessionID, userID primitive.ObjectID) ([]*entity.Work, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	return uc.workRepo.ListBySession(ctx, sessionID)
}

// ReviewWork lets the receiving participant accept or reject a pending
// submission. Review happens once; a second attempt is rejected.
func (uc *WorkUseCase) ReviewWork(ctx context.Context, workID, userID primitive.ObjectID, accept bool) (*entity.Work, error) {
	work, err := uc.workRepo.GetByID(ctx, workID)
	if err != nil {
		return nil, err
	}

	if work.ReceiveUserID != userID {
		return nil, errors.Forbidden("Only the receiving participant can review this work", nil)
	}

	if work.AcceptanceStatus != entity.WorkStatusPending {
		return nil, errors.BadRequest("Work has already been reviewed", nil)
	}

	status := entity.WorkStatusRejected
	if accept {
		status = entity.WorkStatusAccepted
	}

	reviewed, err := uc.workRepo.Review(ctx, workID, status)
	if err != nil {
		return nil, err
	}
	if reviewed == nil {
		return nil, errors.BadRequest("Work has already been reviewed", nil)
	}

	return reviewed, nil
}
