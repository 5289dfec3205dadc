package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

// SessionTransition describes one conditional status change. The update only
// applies while the session still has FromStatus, which is what guards two
// concurrent responders from both winning.
type SessionTransition struct {
	FromStatus string
	ToStatus   string
	ActorID    primitive.ObjectID
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Session, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]*entity.Session, int64, error)
	ListBetweenUsers(ctx context.Context, userA, userB primitive.ObjectID) ([]*entity.Session, error)

	// Transition applies a conditional status change; it returns the updated
	// session, or nil when the precondition no longer held.
	Transition(ctx context.Context, id primitive.ObjectID, t SessionTransition) (*entity.Session, error)

	SetProgressRefs(ctx context.Context, id, progress1ID, progress2ID primitive.ObjectID) error
	MarkAmended(ctx context.Context, id primitive.ObjectID) error

	// ApplyCounterOffer rewrites the session's terms from an accepted counter
	// and activates it, conditional on the session still being pending.
	ApplyCounterOffer(ctx context.Context, id primitive.ObjectID, offer *entity.SessionCounterOffer) (*entity.Session, error)

	// RepairStatus persists a read-time consistency correction, syncing the
	// legacy accepted flag in the same write.
	RepairStatus(ctx context.Context, id primitive.ObjectID, status string) error
}
