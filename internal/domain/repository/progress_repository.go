package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

// ProgressUpdate carries the mutable fields of an upsert; nil members are left
// untouched on an existing document.
type ProgressUpdate struct {
	CompletionPercentage *int
	Status               *string
	Notes                *string
	DueDate              *time.Time
}

type ProgressRepository interface {
	Create(ctx context.Context, progress *entity.SessionProgress) error
	GetBySessionAndUser(ctx context.Context, sessionID, userID primitive.ObjectID) (*entity.SessionProgress, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionProgress, error)

	// Upsert writes the participant's progress keyed on (sessionId, userId),
	// creating the document if a partial session creation lost it.
	Upsert(ctx context.Context, sessionID, userID primitive.ObjectID, update ProgressUpdate) (*entity.SessionProgress, error)
}
