package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
	appErrors "skillbridge/pkg/errors"
)

type reportTestEnv struct {
	uc       *ReportUseCase
	workUC   *WorkUseCase
	reports  *fakeReportRepo
	sessions *fakeSessionRepo
	works    *fakeWorkRepo
	users    *fakeUserRepo
	mailer   *fakeMailer
}

func newReportUseCaseForTest() *reportTestEnv {
	sessions := newFakeSessionRepo()
	works := newFakeWorkRepo()
	users := newFakeUserRepo()
	reports := newFakeReportRepo(users)
	mailer := &fakeMailer{}
	return &reportTestEnv{
		uc:       NewReportUseCase(reports, sessions, works, users, mailer),
		workUC:   NewWorkUseCase(works, sessions),
		reports:  reports,
		sessions: sessions,
		works:    works,
		users:    users,
		mailer:   mailer,
	}
}

func TestFileReport(t *testing.T) {
	env := newReportUseCaseForTest()

	lastActive := time.Now().Add(-48 * time.Hour)
	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com", LastActiveAt: &lastActive}).ID
	session := activeSession(env.sessions, reporter, reported)

	_, err := env.workUC.SubmitWork(context.Background(), reporter, SubmitWorkInput{
		SessionID: session.ID,
		WorkURL:   "https://drive.example.com/folder/abc",
	})
	require.NoError(t, err)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
		Description:  "Never delivered their side of the exchange",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ReportStatusPending, report.Status)
	assert.Equal(t, 1, report.Snapshot.ReporterWorksCount)
	assert.Equal(t, 0, report.Snapshot.ReportedUserWorksCount)
	require.NotNil(t, report.Snapshot.ReportedUserLastActive)
	assert.WithinDuration(t, lastActive, *report.Snapshot.ReportedUserLastActive, time.Second)
}

func TestFileReportAgainstSelf(t *testing.T) {
	env := newReportUseCaseForTest()

	user := primitive.NewObjectID()
	session := activeSession(env.sessions, user, primitive.NewObjectID())

	_, err := env.uc.FileReport(context.Background(), session.ID, user, FileReportInput{ReportedUser: user})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestFileReportNonParticipantTarget(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := primitive.NewObjectID()
	session := activeSession(env.sessions, reporter, primitive.NewObjectID())

	_, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: primitive.NewObjectID(),
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestFileReportByOutsider(t *testing.T) {
	env := newReportUseCaseForTest()

	user1 := primitive.NewObjectID()
	session := activeSession(env.sessions, user1, primitive.NewObjectID())

	_, err := env.uc.FileReport(context.Background(), session.ID, primitive.NewObjectID(), FileReportInput{
		ReportedUser: user1,
	})
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Status)
}

func TestReportSnapshotFrozenAtFilingTime(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Snapshot.ReportedUserWorksCount)

	// A submission after filing must not surface in the stored snapshot.
	_, err = env.workUC.SubmitWork(context.Background(), reported, SubmitWorkInput{
		SessionID: session.ID,
		WorkURL:   "https://drive.example.com/late-delivery",
	})
	require.NoError(t, err)

	stored, err := env.uc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Snapshot.ReportedUserWorksCount)
	assert.Empty(t, stored.Snapshot.ReportedUserWorks)
}

func TestStartInvestigation(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
	})
	require.NoError(t, err)

	kickoff, err := env.uc.StartInvestigation(context.Background(), report.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.ReportStatusUnderReview, kickoff.Report.Status)
	require.Len(t, kickoff.Emails, 2)
	assert.Equal(t, reporter, kickoff.Emails[0].To)
	assert.Equal(t, reported, kickoff.Emails[1].To)
	assert.Contains(t, kickoff.Emails[0].Body, session.ID.Hex())

	// Nothing was dispatched from here; the caller owns sending.
	assert.Empty(t, env.mailer.sent)
}

func TestStartInvestigationTwice(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
	})
	require.NoError(t, err)

	_, err = env.uc.StartInvestigation(context.Background(), report.ID)
	require.NoError(t, err)

	_, err = env.uc.StartInvestigation(context.Background(), report.ID)
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestResolveReportWarn(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)
	admin := primitive.NewObjectID()

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
	})
	require.NoError(t, err)

	resolved, err := env.uc.ResolveReport(context.Background(), report.ID, admin, entity.ReportActionWarn, "First offense, warning issued")
	require.NoError(t, err)

	assert.Equal(t, entity.ReportStatusResolved, resolved.Status)
	assert.Equal(t, entity.ReportActionWarn, resolved.AdminAction)
	require.NotNil(t, resolved.AdminID)
	assert.Equal(t, admin, *resolved.AdminID)

	user, err := env.users.GetByID(context.Background(), reported)
	require.NoError(t, err)
	assert.False(t, user.Suspension.IsSuspended)
}

func TestResolveReportSuspend(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "harassment",
	})
	require.NoError(t, err)

	_, err = env.uc.ResolveReport(context.Background(), report.ID, primitive.NewObjectID(), entity.ReportActionSuspend, "Repeated violations")
	require.NoError(t, err)

	user, err := env.users.GetByID(context.Background(), reported)
	require.NoError(t, err)
	assert.True(t, user.Suspension.IsSuspended)
	assert.Equal(t, "Repeated violations", user.Suspension.Reason)
	assert.NotNil(t, user.Suspension.SuspendedAt)
}

func TestResolveReportSuspendAllOrNothing(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "harassment",
	})
	require.NoError(t, err)

	env.reports.failSuspend = true
	_, err = env.uc.ResolveReport(context.Background(), report.ID, primitive.NewObjectID(), entity.ReportActionSuspend, "Repeated violations")
	require.Error(t, err)

	// The failed suspension left the report untouched too.
	stored, err := env.uc.GetReport(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, stored.Status)

	user, err := env.users.GetByID(context.Background(), reported)
	require.NoError(t, err)
	assert.False(t, user.Suspension.IsSuspended)
}

func TestResolveReportTwice(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	report, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
	})
	require.NoError(t, err)

	_, err = env.uc.ResolveReport(context.Background(), report.ID, primitive.NewObjectID(), entity.ReportActionWarn, "warned")
	require.NoError(t, err)

	_, err = env.uc.ResolveReport(context.Background(), report.ID, primitive.NewObjectID(), entity.ReportActionSuspend, "suspended")
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)

	user, err := env.users.GetByID(context.Background(), reported)
	require.NoError(t, err)
	assert.False(t, user.Suspension.IsSuspended)
}

func TestResolveReportInvalidAction(t *testing.T) {
	env := newReportUseCaseForTest()

	_, err := env.uc.ResolveReport(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "ban", "msg")
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestResolveReportMessageTooLong(t *testing.T) {
	env := newReportUseCaseForTest()

	long := strings.Repeat("x", entity.MaxAdminMessageLength+1)
	_, err := env.uc.ResolveReport(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), entity.ReportActionWarn, long)
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestListSessionReportsAdminBypass(t *testing.T) {
	env := newReportUseCaseForTest()

	reporter := env.users.add(&entity.User{Email: "a@example.com"}).ID
	reported := env.users.add(&entity.User{Email: "b@example.com"}).ID
	session := activeSession(env.sessions, reporter, reported)

	_, err := env.uc.FileReport(context.Background(), session.ID, reporter, FileReportInput{
		ReportedUser: reported,
		Reason:       "no_show",
	})
	require.NoError(t, err)

	outsider := primitive.NewObjectID()

	_, err = env.uc.ListSessionReports(context.Background(), session.ID, outsider, false)
	require.Error(t, err)

	reports, err := env.uc.ListSessionReports(context.Background(), session.ID, outsider, true)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}
