package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

type CounterOfferRepository interface {
	Create(ctx context.Context, offer *entity.SessionCounterOffer) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCounterOffer, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionCounterOffer, error)

	// Respond flips a pending counter-offer to accepted or rejected; returns
	// the updated offer, or nil when it was no longer pending.
	Respond(ctx context.Context, id primitive.ObjectID, status string) (*entity.SessionCounterOffer, error)
}
