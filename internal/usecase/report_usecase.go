package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/internal/domain/service"
	"skillbridge/pkg/errors"
	"skillbridge/pkg/logger"
	"skillbridge/pkg/utils"
)

type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	sessionRepo repository.SessionRepository
	workRepo    repository.WorkRepository
	userRepo    repository.UserRepository
	mailer      service.MailService
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	sessionRepo repository.SessionRepository,
	workRepo repository.WorkRepository,
	userRepo repository.UserRepository,
	mailer service.MailService,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		sessionRepo: sessionRepo,
		workRepo:    workRepo,
		userRepo:    userRepo,
		mailer:      mailer,
	}
}

type FileReportInput struct {
	ReportedUser primitive.ObjectID
	Reason       string
	Description  string
	Evidence     []EvidenceInput
}

// FileReport records a complaint against the counterpart. The evidentiary
// snapshot (reported user's last-active time, both parties' submissions) is
// captured here, once; later submissions never change what the admin sees.
func (uc *ReportUseCase) FileReport(ctx context.Context, sessionID, reportedBy primitive.ObjectID, input FileReportInput) (*entity.SessionReport, error) {
	if reportedBy == input.ReportedUser {
		return nil, errors.BadRequest("You cannot report yourself", nil)
	}

	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(reportedBy) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}
	if !session.HasParticipant(input.ReportedUser) {
		return nil, errors.BadRequest("Reported user is not a participant of this session", nil)
	}

	snapshot, err := uc.buildSnapshot(ctx, sessionID, reportedBy, input.ReportedUser)
	if err != nil {
		return nil, err
	}

	evidence := make([]entity.EvidenceFile, 0, len(input.Evidence))
	for _, ev := range input.Evidence {
		evidence = append(evidence, entity.EvidenceFile{
			ID:       uuid.New().String(),
			FileName: ev.FileName,
			FileURL:  ev.FileURL,
		})
	}

	report := &entity.SessionReport{
		SessionID:    sessionID,
		ReportedBy:   reportedBy,
		ReportedUser: input.ReportedUser,
		Reason:       input.Reason,
		Description:  input.Description,
		Evidence:     evidence,
		Snapshot:     *snapshot,
		Status:       entity.ReportStatusPending,
	}

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (uc *ReportUseCase) buildSnapshot(ctx context.Context, sessionID, reporterID, reportedID primitive.ObjectID) (*entity.ReportSnapshot, error) {
	reported, err := uc.userRepo.GetByID(ctx, reportedID)
	if err != nil {
		return nil, err
	}

	reporterWorks, err := uc.workRepo.ListBySessionAndProvider(ctx, sessionID, reporterID)
	if err != nil {
		return nil, err
	}
	reportedWorks, err := uc.workRepo.ListBySessionAndProvider(ctx, sessionID, reportedID)
	if err != nil {
		return nil, err
	}

	snapshot := &entity.ReportSnapshot{
		ReportedUserLastActive: reported.LastActiveAt,
		ReporterWorksCount:     len(reporterWorks),
		ReportedUserWorksCount: len(reportedWorks),
	}
	for _, w := range reporterWorks {
		snapshot.ReporterWorks = append(snapshot.ReporterWorks, w.Summary())
	}
	for _, w := range reportedWorks {
		snapshot.ReportedUserWorks = append(snapshot.ReportedUserWorks, w.Summary())
	}

	return snapshot, nil
}

func (uc *ReportUseCase) GetReport(ctx context.Context, reportID primitive.ObjectID) (*entity.SessionReport, error) {
	return uc.reportRepo.GetByID(ctx, reportID)
}

func (uc *ReportUseCase) ListSessionReports(ctx context.Context, sessionID, userID primitive.ObjectID, isAdmin bool) ([]*entity.SessionReport, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && !session.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this session", nil)
	}

	return uc.reportRepo.ListBySession(ctx, sessionID)
}

func (uc *ReportUseCase) ListReports(ctx context.Context, status string, page, limit int) ([]*entity.SessionReport, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)
	return uc.reportRepo.ListByStatus(ctx, status, pagination.PageSize, pagination.Offset)
}

// InvestigationKickoff is the notify result: the report moved to under_review
// plus the generated email bodies the frontend dispatches itself.
type InvestigationKickoff struct {
	Report *entity.SessionReport       `json:"report"`
	Emails []entity.InvestigationEmail `json:"emails"`
}

// StartInvestigation moves a pending report to under_review and generates the
// investigation email bodies. It never sends mail, and invoking it twice is
// rejected.
func (uc *ReportUseCase) StartInvestigation(ctx context.Context, reportID primitive.ObjectID) (*InvestigationKickoff, error) {
	if _, err := uc.reportRepo.GetByID(ctx, reportID); err != nil {
		return nil, err
	}

	report, err := uc.reportRepo.StartInvestigation(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, errors.BadRequest("Report is already under review or resolved", nil)
	}

	emails := []entity.InvestigationEmail{
		{
			To:      report.ReportedBy,
			Subject: "Your report is under investigation",
			Body: fmt.Sprintf(
				"Your report on session %s (reason: %s) is now under review. You had submitted %d work item(s) at the time of the report.",
				report.SessionID.Hex(), report.Reason, report.Snapshot.ReporterWorksCount),
		},
		{
			To:      report.ReportedUser,
			Subject: "A report against you is under investigation",
			Body: fmt.Sprintf(
				"A report filed on session %s (reason: %s) is now under review. You had submitted %d work item(s) at the time of the report. You may be contacted for additional details.",
				report.SessionID.Hex(), report.Reason, report.Snapshot.ReportedUserWorksCount),
		},
	}

	return &InvestigationKickoff{Report: report, Emails: emails}, nil
}

// ResolveReport applies an admin action. The report update and, for a suspend,
// the user suspension commit in one database transaction; the notification
// emails go out after commit and their failure is only logged.
func (uc *ReportUseCase) ResolveReport(ctx context.Context, reportID, adminID primitive.ObjectID, action, message string) (*entity.SessionReport, error) {
	if !entity.ValidReportAction(action) {
		return nil, errors.BadRequest("Action must be warn or suspend", nil)
	}
	if len(message) > entity.MaxAdminMessageLength {
		return nil, errors.BadRequest("Admin message must be at most 1000 characters", nil)
	}

	resolved, err := uc.reportRepo.Resolve(ctx, reportID, repository.ReportResolution{
		AdminID: adminID,
		Action:  action,
		Message: message,
	})
	if err != nil {
		return nil, err
	}

	go uc.notifyResolution(resolved, action, message)

	return resolved, nil
}

func (uc *ReportUseCase) notifyResolution(report *entity.SessionReport, action, message string) {
	ctx := context.Background()

	for _, userID := range []primitive.ObjectID{report.ReportedBy, report.ReportedUser} {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			logger.Warn("Resolution mail skipped for %s: %v", userID.Hex(), err)
			continue
		}

		subject := fmt.Sprintf("Report on session %s resolved", report.SessionID.Hex())
		body := fmt.Sprintf("Action taken: %s. %s", action, message)
		if err := uc.mailer.Send(ctx, user.Email, subject, body); err != nil {
			logger.Warn("Resolution mail failed for %s: %v", user.Email, err)
		}
	}
}
