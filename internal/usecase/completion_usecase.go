package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/logger"
)

type CompletionUseCase struct {
	completionRepo repository.CompletionRepository
	sessionRepo    repository.SessionRepository
}

func NewCompletionUseCase(
	completionRepo repository.CompletionRepository,
	sessionRepo repository.SessionRepository,
) *CompletionUseCase {
	return &CompletionUseCase{
		completionRepo: completionRepo,
		sessionRepo:    sessionRepo,
	}
}

// RequestCompletion asks the counterpart to agree that the session is done.
// Work acceptance never completes a session on its own; only an approved
// completion request does.
func (uc *CompletionUseCase) RequestCompletion(ctx context.Context, sessionID, userID primitive.ObjectID, message string) (*entity.SessionCompletion, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}
	if session.Status != entity.SessionStatusActive {
		return nil, errors.BadRequest("Completion can only be requested for an active session", nil)
	}

	completion := &entity.SessionCompletion{
		SessionID:   sessionID,
		RequestedBy: userID,
		Message:     message,
		Status:      entity.CompletionStatusPending,
	}

	if err := uc.completionRepo.Create(ctx, completion); err != nil {
		return nil, err
	}

	return completion, nil
}

// RespondToCompletion lets the counterpart approve or reject a pending
// completion request; approval advances the session to completed. The two
// writes are separate paths, which is why the completion-check repair below
// exists.
func (uc *CompletionUseCase) RespondToCompletion(ctx context.Context, completionID, userID primitive.ObjectID, approve bool) (*entity.SessionCompletion, error) {
	completion, err := uc.completionRepo.GetByID(ctx, completionID)
	if err != nil {
		return nil, err
	}

	session, err := uc.sessionRepo.GetByID(ctx, completion.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}
	if completion.RequestedBy == userID {
		return nil, errors.Forbidden("You cannot respond to your own completion request", nil)
	}

	if completion.Status != entity.CompletionStatusPending {
		return nil, errors.BadRequest("Completion request has already been decided", nil)
	}

	status := entity.CompletionStatusRejected
	if approve {
		status = entity.CompletionStatusApproved
	}

	responded, err := uc.completionRepo.Respond(ctx, completionID, status, userID)
	if err != nil {
		return nil, err
	}
	if responded == nil {
		return nil, errors.BadRequest("Completion request has already been decided", nil)
	}

	if approve {
		updated, err := uc.sessionRepo.Transition(ctx, session.ID, repository.SessionTransition{
			FromStatus: entity.SessionStatusActive,
			ToStatus:   entity.SessionStatusCompleted,
			ActorID:    userID,
		})
		if err != nil {
			return nil, err
		}
		if updated == nil {
			// The approval is recorded; the completion-check sweep will
			// reconcile the session status.
			logger.Warn("Session %s not active while approving completion %s", session.ID.Hex(), completionID.Hex())
		}
	}

	return responded, nil
}

// CompletionCheckResult reports whether a session's status lags behind an
// approved completion request, and whether this call repaired it.
type CompletionCheckResult struct {
	SessionID             primitive.ObjectID `json:"session_id"`
	SessionStatus         string             `json:"session_status"`
	HasApprovedCompletion bool               `json:"has_approved_completion"`
	NeededFix             bool               `json:"needed_fix"`
	Fixed                 bool               `json:"fixed"`
}

// CheckCompletion is the fix-completion diagnostic: a session with an approved
// completion request but a stale status gets repaired; anything else is
// reported as not needing a fix.
func (uc *CompletionUseCase) CheckCompletion(ctx context.Context, sessionID primitive.ObjectID) (*CompletionCheckResult, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	approved, err := uc.completionRepo.GetApprovedBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := &CompletionCheckResult{
		SessionID:             session.ID,
		SessionStatus:         session.Status,
		HasApprovedCompletion: approved != nil,
	}

	if approved == nil || session.Status == entity.SessionStatusCompleted {
		return result, nil
	}

	result.NeededFix = true
	if err := uc.sessionRepo.RepairStatus(ctx, session.ID, entity.SessionStatusCompleted); err != nil {
		return nil, err
	}
	result.Fixed = true
	result.SessionStatus = entity.SessionStatusCompleted

	return result, nil
}

// FixAllCompletionsResult summarizes one reconciliation sweep.
type FixAllCompletionsResult struct {
	Checked  int                  `json:"checked"`
	Fixed    int                  `json:"fixed"`
	FixedIDs []primitive.ObjectID `json:"fixed_session_ids,omitempty"`
}

// FixAllCompletions sweeps every approved completion request and repairs any
// session whose status never advanced to completed.
func (uc *CompletionUseCase) FixAllCompletions(ctx context.Context) (*FixAllCompletionsResult, error) {
	approved, err := uc.completionRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	result := &FixAllCompletionsResult{}
	seen := make(map[primitive.ObjectID]bool)

	for _, completion := range approved {
		if seen[completion.SessionID] {
			continue
		}
		seen[completion.SessionID] = true
		result.Checked++

		session, err := uc.sessionRepo.GetByID(ctx, completion.SessionID)
		if err != nil {
			logger.Warn("Skipping completion %s: %v", completion.ID.Hex(), err)
			continue
		}
		if session.Status == entity.SessionStatusCompleted {
			continue
		}

		if err := uc.sessionRepo.RepairStatus(ctx, session.ID, entity.SessionStatusCompleted); err != nil {
			logger.Error("Failed to repair session %s: %v", session.ID.Hex(), err)
			continue
		}
		result.Fixed++
		result.FixedIDs = append(result.FixedIDs, session.ID)
	}

	return result, nil
}
