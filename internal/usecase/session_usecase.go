package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/logger"
	"skillbridge/pkg/utils"
)

type SessionUseCase struct {
	sessionRepo  repository.SessionRepository
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
}

func NewSessionUseCase(
	sessionRepo repository.SessionRepository,
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
) *SessionUseCase {
	return &SessionUseCase{
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

type CreateSessionInput struct {
	User2ID      primitive.ObjectID
	Skill1ID     primitive.ObjectID
	Skill2ID     primitive.ObjectID
	Description1 string
	Description2 string
	StartDate    time.Time
	DueDate1     *time.Time
	DueDate2     *time.Time
}

// CreateSession creates a pending session plus one progress document per
// participant, then links the progress ids back onto the session.
func (uc *SessionUseCase) CreateSession(ctx context.Context, user1ID primitive.ObjectID, input CreateSessionInput) (*entity.Session, error) {
	if input.User2ID == user1ID {
		return nil, errors.BadRequest("Cannot open a session with yourself", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, input.User2ID); err != nil {
		return nil, err
	}

	session := &entity.Session{
		User1ID:      user1ID,
		User2ID:      input.User2ID,
		Skill1ID:     input.Skill1ID,
		Skill2ID:     input.Skill2ID,
		Description1: input.Description1,
		Description2: input.Description2,
		Status:       entity.SessionStatusPending,
		IsAccepted:   nil,
		StartDate:    input.StartDate,
	}

	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	progress1 := &entity.SessionProgress{
		SessionID: session.ID,
		UserID:    user1ID,
		Status:    entity.ProgressStatusNotStarted,
		DueDate:   input.DueDate1,
	}
	progress2 := &entity.SessionProgress{
		SessionID: session.ID,
		UserID:    input.User2ID,
		Status:    entity.ProgressStatusNotStarted,
		DueDate:   input.DueDate2,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return uc.progressRepo.Create(gctx, progress1) })
	g.Go(func() error { return uc.progressRepo.Create(gctx, progress2) })
	if err := g.Wait(); err != nil {
		// The session document already exists; a missing progress doc is
		// recreated by the upsert path on first update.
		logger.Error("Failed to create progress for session %s: %v", session.ID.Hex(), err)
		return nil, err
	}

	if err := uc.sessionRepo.SetProgressRefs(ctx, session.ID, progress1.ID, progress2.ID); err != nil {
		return nil, err
	}
	session.Progress1ID = progress1.ID
	session.Progress2ID = progress2.ID

	return session, nil
}

func (uc *SessionUseCase) GetSession(ctx context.Context, userID, sessionID primitive.ObjectID) (*entity.Session, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	return session, nil
}

func (uc *SessionUseCase) ListSessions(ctx context.Context, userID primitive.ObjectID, status string, page, limit int) ([]*entity.Session, int64, error) {
	if status != "" && !entity.ValidSessionStatus(status) {
		return nil, 0, errors.BadRequest("Invalid session status filter", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)
	return uc.sessionRepo.ListByUser(ctx, userID, status, pagination.PageSize, pagination.Offset)
}

// ListSessionsBetweenUsers fetches every session between the caller and the
// other user, repairing any legacy document whose status disagrees with its
// isAccepted flag (nil=pending, true=active, false=canceled) and persisting
// the correction.
func (uc *SessionUseCase) ListSessionsBetweenUsers(ctx context.Context, userID, otherUserID primitive.ObjectID) ([]*entity.Session, error) {
	sessions, err := uc.sessionRepo.ListBetweenUsers(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if session.StatusConsistent() {
			continue
		}

		corrected := entity.StatusFromAcceptedFlag(session.IsAccepted)
		if err := uc.sessionRepo.RepairStatus(ctx, session.ID, corrected); err != nil {
			logger.Warn("Failed to repair session %s: %v", session.ID.Hex(), err)
			continue
		}
		session.Status = corrected
		session.IsAccepted = entity.AcceptedFlagFor(corrected)
	}

	return sessions, nil
}

// RespondToSession is the proposal decision: accept activates the session,
// reject and cancel terminate it. Accept and reject belong to the recipient of
// the proposal; cancel is open to both parties.
func (uc *SessionUseCase) RespondToSession(ctx context.Context, sessionID, userID primitive.ObjectID, action string) (*entity.Session, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	var target string
	switch action {
	case "accept":
		target = entity.SessionStatusActive
	case "reject":
		target = entity.SessionStatusRejected
	case "cancel":
		target = entity.SessionStatusCanceled
	default:
		return nil, errors.BadRequest("Invalid action, must be accept, reject or cancel", nil)
	}

	if (action == "accept" || action == "reject") && userID != session.User2ID {
		return nil, errors.Forbidden("Only the recipient of the proposal can accept or reject it", nil)
	}

	if !session.Undecided() {
		return nil, errors.BadRequest("Session has already been decided", nil)
	}

	updated, err := uc.sessionRepo.Transition(ctx, sessionID, repository.SessionTransition{
		FromStatus: entity.SessionStatusPending,
		ToStatus:   target,
		ActorID:    userID,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.Conflict("Session was decided concurrently", nil)
	}

	return updated, nil
}
