package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

type WorkRepository interface {
	Create(ctx context.Context, work *entity.Work) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Work, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.Work, error)
	ListBySessionAndProvider(ctx context.Context, sessionID, providerID primitive.ObjectID) ([]*entity.Work, error)

	// Review flips acceptanceStatus from pending; returns the updated work,
	// or nil when it was already reviewed.
	Review(ctx context.Context, id primitive.ObjectID, status string) (*entity.Work, error)
}
