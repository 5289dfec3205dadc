package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"skillbridge/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	TouchLastActive(ctx context.Context, id primitive.ObjectID) error
}
