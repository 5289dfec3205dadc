package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

type CancellationRepository interface {
	// Create inserts a cancellation request. The storage layer's partial
	// unique index rejects a second outstanding request for the same session;
	// implementations map that to a conflict error.
	Create(ctx context.Context, cancel *entity.SessionCancel) error

	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCancel, error)
	GetOutstandingBySession(ctx context.Context, sessionID primitive.ObjectID) (*entity.SessionCancel, error)

	// ListUnacknowledgedFor returns requests the given user has not yet seen:
	// requests within their sessions, excluding their own initiations and
	// anything already acknowledged.
	ListUnacknowledgedFor(ctx context.Context, userID primitive.ObjectID, sessionIDs []primitive.ObjectID) ([]*entity.SessionCancel, error)

	// Acknowledge marks a request as seen; returns the updated record, or nil
	// when it was already acknowledged (acknowledgedAt stays untouched).
	Acknowledge(ctx context.Context, id primitive.ObjectID) (*entity.SessionCancel, error)
}
