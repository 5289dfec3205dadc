package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

type CompletionRepository interface {
	Create(ctx context.Context, completion *entity.SessionCompletion) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCompletion, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionCompletion, error)
	GetApprovedBySession(ctx context.Context, sessionID primitive.ObjectID) (*entity.SessionCompletion, error)
	ListApproved(ctx context.Context) ([]*entity.SessionCompletion, error)

	// Respond flips a pending completion request to approved or rejected;
	// returns the updated record, or nil when it was no longer pending.
	Respond(ctx context.Context, id primitive.ObjectID, status string, respondedBy primitive.ObjectID) (*entity.SessionCompletion, error)
}
