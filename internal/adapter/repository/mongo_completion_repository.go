package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"skillbridge/internal/domain/entity"
	"skillbridge/internal/domain/repository"
	"skillbridge/pkg/errors"
)

type mongoCompletionRepository struct {
	db *mongo.Database
}

func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{db: db}
}

func (r *mongoCompletionRepository) collection() *mongo.Collection {
	return r.db.Collection(colCompletions)
}

func (r *mongoCompletionRepository) Create(ctx context.Context, completion *entity.SessionCompletion) error {
	now := time.Now()
	completion.CreatedAt = now
	completion.UpdatedAt = now
	if completion.Status == "" {
		completion.Status = entity.CompletionStatusPending
	}

	res, err := r.collection().InsertOne(ctx, completion)
	if err != nil {
		return errors.Internal("Failed to create completion request", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		completion.ID = oid
	}
	return nil
}

func (r *mongoCompletionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCompletion, error) {
	var completion entity.SessionCompletion
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&completion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Completion request", err)
		}
		return nil, errors.Internal("Failed to get completion request", err)
	}
	return &completion, nil
}

func (r *mongoCompletionRepository) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionCompletion, error) {
	cursor, err := r.collection().Find(ctx,
		bson.M{"sessionId": sessionID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Internal("Failed to list completion requests", err)
	}
	defer cursor.Close(ctx)

	var completions []*entity.SessionCompletion
	if err := cursor.All(ctx, &completions); err != nil {
		return nil, errors.Internal("Failed to decode completion requests", err)
	}
	return completions, nil
}

func (r *mongoCompletionRepository) GetApprovedBySession(ctx context.Context, sessionID primitive.ObjectID) (*entity.SessionCompletion, error) {
	var completion entity.SessionCompletion
	err := r.collection().FindOne(ctx, bson.M{
		"sessionId": sessionID,
		"status":    entity.CompletionStatusApproved,
	}).Decode(&completion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get approved completion", err)
	}
	return &completion, nil
}

func (r *mongoCompletionRepository) ListApproved(ctx context.Context) ([]*entity.SessionCompletion, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"status": entity.CompletionStatusApproved})
	if err != nil {
		return nil, errors.Internal("Failed to list approved completions", err)
	}
	defer cursor.Close(ctx)

	var completions []*entity.SessionCompletion
	if err := cursor.All(ctx, &completions); err != nil {
		return nil, errors.Internal("Failed to decode approved completions", err)
	}
	return completions, nil
}

func (r *mongoCompletionRepository) Respond(ctx context.Context, id primitive.ObjectID, status string, respondedBy primitive.ObjectID) (*entity.SessionCompletion, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var completion entity.SessionCompletion
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.CompletionStatusPending},
		bson.M{"$set": bson.M{
			"status":      status,
			"respondedBy": respondedBy,
			"respondedAt": now,
			"updatedAt":   now,
		}},
		opts,
	).Decode(&completion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to respond to completion request", err)
	}

	return &completion, nil
}
