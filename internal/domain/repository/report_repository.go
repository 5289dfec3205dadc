package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

// ReportResolution is the admin action applied to a report.
type ReportResolution struct {
	AdminID primitive.ObjectID
	Action  string
	Message string
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.SessionReport) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionReport, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionReport, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.SessionReport, int64, error)

	// StartInvestigation moves a pending report to under_review; returns nil
	// when the report already left pending.
	StartInvestigation(ctx context.Context, id primitive.ObjectID) (*entity.SessionReport, error)

	// Resolve applies the admin action inside a single database transaction:
	// the report becomes resolved and, for a suspend action, the reported
	// user's suspension is set in the same transaction. All-or-nothing.
	Resolve(ctx context.Context, id primitive.ObjectID, resolution ReportResolution) (*entity.SessionReport, error)
}
