package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
)

// In-memory repository fakes mirroring the conditional-update semantics of
// the Mongo implementations: state-guarded writes return nil instead of an
// error when the precondition no longer holds.

type fakeSessionRepo struct {
	sessions map[primitive.ObjectID]*entity.Session
	repaired map[primitive.ObjectID]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[primitive.ObjectID]*entity.Session),
		repaired: make(map[primitive.ObjectID]string),
	}
}

func (f *fakeSessionRepo) add(s *entity.Session) *entity.Session {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.sessions[s.ID] = s
	return s
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now()
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.NotFound("Session", nil)
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]*entity.Session, int64, error) {
	var out []*entity.Session
	for _, s := range f.sessions {
		if !s.HasParticipant(userID) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		copied := *s
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionRepo) ListBetweenUsers(ctx context.Context, userA, userB primitive.ObjectID) ([]*entity.Session, error) {
	var out []*entity.Session
	for _, s := range f.sessions {
		if s.HasParticipant(userA) && s.HasParticipant(userB) {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Transition(ctx context.Context, id primitive.ObjectID, t repository.SessionTransition) (*entity.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.NotFound("Session", nil)
	}
	if session.Status != t.FromStatus {
		return nil, nil
	}
	session.Status = t.ToStatus
	session.IsAccepted = entity.AcceptedFlagFor(t.ToStatus)
	if t.ToStatus == entity.SessionStatusRejected {
		now := time.Now()
		session.RejectedBy = &t.ActorID
		session.RejectedAt = &now
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) SetProgressRefs(ctx context.Context, id, progress1ID, progress2ID primitive.ObjectID) error {
	session, ok := f.sessions[id]
	if !ok {
		return errors.NotFound("Session", nil)
	}
	session.Progress1ID = progress1ID
	session.Progress2ID = progress2ID
	return nil
}

func (f *fakeSessionRepo) MarkAmended(ctx context.Context, id primitive.ObjectID) error {
	session, ok := f.sessions[id]
	if !ok {
		return errors.NotFound("Session", nil)
	}
	session.IsAmended = true
	return nil
}

func (f *fakeSessionRepo) ApplyCounterOffer(ctx context.Context, id primitive.ObjectID, offer *entity.SessionCounterOffer) (*entity.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.NotFound("Session", nil)
	}
	if session.Status != entity.SessionStatusPending {
		return nil, nil
	}
	session.Skill1ID = offer.Skill1ID
	session.Skill2ID = offer.Skill2ID
	session.Description1 = offer.Description1
	session.Description2 = offer.Description2
	session.StartDate = offer.StartDate
	session.Status = entity.SessionStatusActive
	session.IsAccepted = entity.AcceptedFlagFor(entity.SessionStatusActive)
	copied := *session
	return &copied, nil
}

func (f *fakeSessionRepo) RepairStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	session, ok := f.sessions[id]
	if !ok {
		return errors.NotFound("Session", nil)
	}
	session.Status = status
	session.IsAccepted = entity.AcceptedFlagFor(status)
	f.repaired[id] = status
	return nil
}

type fakeProgressRepo struct {
	mu   sync.Mutex
	docs []*entity.SessionProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{}
}

func (f *fakeProgressRepo) Create(ctx context.Context, progress *entity.SessionProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress.ID = primitive.NewObjectID()
	f.docs = append(f.docs, progress)
	return nil
}

func (f *fakeProgressRepo) GetBySessionAndUser(ctx context.Context, sessionID, userID primitive.ObjectID) (*entity.SessionProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.docs {
		if p.SessionID == sessionID && p.UserID == userID {
			return p, nil
		}
	}
	return nil, errors.NotFound("Progress", nil)
}

func (f *fakeProgressRepo) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.SessionProgress
	for _, p := range f.docs {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) Upsert(ctx context.Context, sessionID, userID primitive.ObjectID, update repository.ProgressUpdate) (*entity.SessionProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var doc *entity.SessionProgress
	for _, p := range f.docs {
		if p.SessionID == sessionID && p.UserID == userID {
			doc = p
			break
		}
	}
	if doc == nil {
		doc = &entity.SessionProgress{
			ID:        primitive.NewObjectID(),
			SessionID: sessionID,
			UserID:    userID,
			Status:    entity.ProgressStatusNotStarted,
		}
		f.docs = append(f.docs, doc)
	}
	if update.CompletionPercentage != nil {
		doc.CompletionPercentage = *update.CompletionPercentage
	}
	if update.Status != nil {
		doc.Status = *update.Status
	}
	if update.Notes != nil {
		doc.Notes = *update.Notes
	}
	if update.DueDate != nil {
		doc.DueDate = update.DueDate
	}
	doc.UpdatedAt = time.Now()
	return doc, nil
}

type fakeCounterOfferRepo struct {
	offers map[primitive.ObjectID]*entity.SessionCounterOffer
}

func newFakeCounterOfferRepo() *fakeCounterOfferRepo {
	return &fakeCounterOfferRepo{offers: make(map[primitive.ObjectID]*entity.SessionCounterOffer)}
}

func (f *fakeCounterOfferRepo) Create(ctx context.Context, offer *entity.SessionCounterOffer) error {
	offer.ID = primitive.NewObjectID()
	f.offers[offer.ID] = offer
	return nil
}

func (f *fakeCounterOfferRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCounterOffer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, errors.NotFound("Counter-offer", nil)
	}
	copied := *offer
	return &copied, nil
}

func (f *fakeCounterOfferRepo) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionCounterOffer, error) {
	var out []*entity.SessionCounterOffer
	for _, o := range f.offers {
		if o.OriginalSessionID == sessionID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeCounterOfferRepo) Respond(ctx context.Context, id primitive.ObjectID, status string) (*entity.SessionCounterOffer, error) {
	offer, ok := f.offers[id]
	if !ok {
		return nil, errors.NotFound("Counter-offer", nil)
	}
	if offer.Status != entity.CounterOfferStatusPending {
		return nil, nil
	}
	offer.Status = status
	copied := *offer
	return &copied, nil
}

type fakeCancellationRepo struct {
	cancels map[primitive.ObjectID]*entity.SessionCancel
}

func newFakeCancellationRepo() *fakeCancellationRepo {
	return &fakeCancellationRepo{cancels: make(map[primitive.ObjectID]*entity.SessionCancel)}
}

func (f *fakeCancellationRepo) Create(ctx context.Context, cancel *entity.SessionCancel) error {
	for _, c := range f.cancels {
		if c.SessionID == cancel.SessionID && c.Resolution == entity.CancelResolutionPending {
			return errors.Conflict("A cancellation request already exists for this session", nil)
		}
	}
	cancel.ID = primitive.NewObjectID()
	f.cancels[cancel.ID] = cancel
	return nil
}

func (f *fakeCancellationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCancel, error) {
	cancel, ok := f.cancels[id]
	if !ok {
		return nil, errors.NotFound("Cancellation request", nil)
	}
	copied := *cancel
	return &copied, nil
}

func (f *fakeCancellationRepo) GetOutstandingBySession(ctx context.Context, sessionID primitive.ObjectID) (*entity.SessionCancel, error) {
	for _, c := range f.cancels {
		if c.SessionID == sessionID && c.Resolution == entity.CancelResolutionPending {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCancellationRepo) ListUnacknowledgedFor(ctx context.Context, userID primitive.ObjectID, sessionIDs []primitive.ObjectID) ([]*entity.SessionCancel, error) {
	ids := make(map[primitive.ObjectID]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		ids[id] = true
	}
	var out []*entity.SessionCancel
	for _, c := range f.cancels {
		if ids[c.SessionID] && c.InitiatorID != userID && !c.Acknowledged {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCancellationRepo) Acknowledge(ctx context.Context, id primitive.ObjectID) (*entity.SessionCancel, error) {
	cancel, ok := f.cancels[id]
	if !ok {
		return nil, errors.NotFound("Cancellation request", nil)
	}
	if cancel.Acknowledged {
		return nil, nil
	}
	now := time.Now()
	cancel.Acknowledged = true
	cancel.AcknowledgedAt = &now
	copied := *cancel
	return &copied, nil
}

type fakeWorkRepo struct {
	works map[primitive.ObjectID]*entity.Work
}

func newFakeWorkRepo() *fakeWorkRepo {
	return &fakeWorkRepo{works: make(map[primitive.ObjectID]*entity.Work)}
}

func (f *fakeWorkRepo) Create(ctx context.Context, work *entity.Work) error {
	work.ID = primitive.NewObjectID()
	work.CreatedAt = time.Now()
	f.works[work.ID] = work
	return nil
}

func (f *fakeWorkRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Work, error) {
	work, ok := f.works[id]
	if !ok {
		return nil, errors.NotFound("Work", nil)
	}
	copied := *work
	return &copied, nil
}

func (f *fakeWorkRepo) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.Work, error) {
	var out []*entity.Work
	for _, w := range f.works {
		if w.SessionID == sessionID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkRepo) ListBySessionAndProvider(ctx context.Context, sessionID, providerID primitive.ObjectID) ([]*entity.Work, error) {
	var out []*entity.Work
	for _, w := range f.works {
		if w.SessionID == sessionID && w.ProvideUserID == providerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkRepo) Review(ctx context.Context, id primitive.ObjectID, status string) (*entity.Work, error) {
	work, ok := f.works[id]
	if !ok {
		return nil, errors.NotFound("Work", nil)
	}
	if work.AcceptanceStatus != entity.WorkStatusPending {
		return nil, nil
	}
	now := time.Now()
	work.AcceptanceStatus = status
	work.ReviewedAt = &now
	copied := *work
	return &copied, nil
}

type fakeCompletionRepo struct {
	completions map[primitive.ObjectID]*entity.SessionCompletion
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{completions: make(map[primitive.ObjectID]*entity.SessionCompletion)}
}

func (f *fakeCompletionRepo) Create(ctx context.Context, completion *entity.SessionCompletion) error {
	completion.ID = primitive.NewObjectID()
	f.completions[completion.ID] = completion
	return nil
}

func (f *fakeCompletionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCompletion, error) {
	completion, ok := f.completions[id]
	if !ok {
		return nil, errors.NotFound("Completion request", nil)
	}
	copied := *completion
	return &copied, nil
}

func (f *fakeCompletionRepo) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionCompletion, error) {
	var out []*entity.SessionCompletion
	for _, c := range f.completions {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompletionRepo) GetApprovedBySession(ctx context.Context, sessionID primitive.ObjectID) (*entity.SessionCompletion, error) {
	for _, c := range f.completions {
		if c.SessionID == sessionID && c.Status == entity.CompletionStatusApproved {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeCompletionRepo) ListApproved(ctx context.Context) ([]*entity.SessionCompletion, error) {
	var out []*entity.SessionCompletion
	for _, c := range f.completions {
		if c.Status == entity.CompletionStatusApproved {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompletionRepo) Respond(ctx context.Context, id primitive.ObjectID, status string, respondedBy primitive.ObjectID) (*entity.SessionCompletion, error) {
	completion, ok := f.completions[id]
	if !ok {
		return nil, errors.NotFound("Completion request", nil)
	}
	if completion.Status != entity.CompletionStatusPending {
		return nil, nil
	}
	now := time.Now()
	completion.Status = status
	completion.RespondedBy = &respondedBy
	completion.RespondedAt = &now
	copied := *completion
	return &copied, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*entity.User)}
}

func (f *fakeUserRepo) add(u *entity.User) *entity.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) TouchLastActive(ctx context.Context, id primitive.ObjectID) error {
	user, ok := f.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	now := time.Now()
	user.LastActiveAt = &now
	return nil
}

// fakeReportRepo mimics the transactional Resolve of the Mongo implementation:
// the report flip and the user suspension either both apply or neither does.
type fakeReportRepo struct {
	reports     map[primitive.ObjectID]*entity.SessionReport
	userRepo    *fakeUserRepo
	failSuspend bool
}

func newFakeReportRepo(userRepo *fakeUserRepo) *fakeReportRepo {
	return &fakeReportRepo{
		reports:  make(map[primitive.ObjectID]*entity.SessionReport),
		userRepo: userRepo,
	}
}

func (f *fakeReportRepo) Create(ctx context.Context, report *entity.SessionReport) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	f.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, errors.NotFound("Report", nil)
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionReport, error) {
	var out []*entity.SessionReport
	for _, r := range f.reports {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.SessionReport, int64, error) {
	var out []*entity.SessionReport
	for _, r := range f.reports {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReportRepo) StartInvestigation(ctx context.Context, id primitive.ObjectID) (*entity.SessionReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, errors.NotFound("Report", nil)
	}
	if report.Status != entity.ReportStatusPending {
		return nil, nil
	}
	report.Status = entity.ReportStatusUnderReview
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) Resolve(ctx context.Context, id primitive.ObjectID, resolution repository.ReportResolution) (*entity.SessionReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, errors.NotFound("Report", nil)
	}
	if report.Status == entity.ReportStatusResolved {
		return nil, errors.BadRequest("Report has already been resolved", nil)
	}
	if resolution.Action == entity.ReportActionSuspend {
		if f.failSuspend {
			return nil, errors.Internal("Failed to resolve report", nil)
		}
		user, uok := f.userRepo.users[report.ReportedUser]
		if !uok {
			return nil, errors.NotFound("User", nil)
		}
		now := time.Now()
		user.Suspension = entity.Suspension{
			IsSuspended: true,
			SuspendedAt: &now,
			Reason:      resolution.Message,
		}
	}
	now := time.Now()
	report.Status = entity.ReportStatusResolved
	report.AdminResponse = resolution.Message
	report.AdminAction = resolution.Action
	report.AdminID = &resolution.AdminID
	report.ResolvedAt = &now
	copied := *report
	return &copied, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func activeSession(sessions *fakeSessionRepo, user1, user2 primitive.ObjectID) *entity.Session {
	return sessions.add(&entity.Session{
		User1ID:    user1,
		User2ID:    user2,
		Status:     entity.SessionStatusActive,
		IsAccepted: entity.AcceptedFlagFor(entity.SessionStatusActive),
		StartDate:  time.Now(),
	})
}

func sessionTransitionTo(status string, actor primitive.ObjectID) repository.SessionTransition {
	return repository.SessionTransition{
		FromStatus: entity.SessionStatusPending,
		ToStatus:   status,
		ActorID:    actor,
	}
}

func pendingSession(sessions *fakeSessionRepo, user1, user2 primitive.ObjectID) *entity.Session {
	return sessions.add(&entity.Session{
		User1ID:   user1,
		User2ID:   user2,
		Status:    entity.SessionStatusPending,
		StartDate: time.Now(),
	})
}
