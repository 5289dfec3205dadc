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

type mongoCancellationRepository struct {
	db *mongo.Database
}

func NewMongoCancellationRepository(db *mongo.Database) repository.CancellationRepository {
	return &mongoCancellationRepository{db: db}
}

func (r *mongoCancellationRepository) collection() *mongo.Collection {
	return r.db.Collection(colCancellations)
}

func (r *mongoCancellationRepository) Create(ctx context.Context, cancel *entity.SessionCancel) error {
	now := time.Now()
	cancel.CreatedAt = now
	cancel.UpdatedAt = now
	if cancel.ResponseStatus == "" {
		cancel.ResponseStatus = entity.CancelResponsePending
	}
	if cancel.Resolution == "" {
		cancel.Resolution = entity.CancelResolutionPending
	}

	res, err := r.collection().InsertOne(ctx, cancel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Conflict("A cancellation request already exists for this session", err)
		}
		return errors.Internal("Failed to create cancellation request", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		cancel.ID = oid
	}
	return nil
}

func (r *mongoCancellationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCancel, error) {
	var cancel entity.SessionCancel
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&cancel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Cancellation request", err)
		}
		return nil, errors.Internal("Failed to get cancellation request", err)
	}
	return &cancel, nil
}

func (r *mongoCancellationRepository) GetOutstandingBySession(ctx context.Context, sessionID primitive.ObjectID) (*entity.SessionCancel, error) {
	var cancel entity.SessionCancel
	err := r.collection().FindOne(ctx, bson.M{
		"sessionId":  sessionID,
		"resolution": entity.CancelResolutionPending,
	}).Decode(&cancel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to get outstanding cancellation", err)
	}
	return &cancel, nil
}

func (r *mongoCancellationRepository) ListUnacknowledgedFor(ctx context.Context, userID primitive.ObjectID, sessionIDs []primitive.ObjectID) ([]*entity.SessionCancel, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"sessionId":    bson.M{"$in": sessionIDs},
		"initiatorId":  bson.M{"$ne": userID},
		"acknowledged": false,
	}

	cursor, err := r.collection().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list unacknowledged cancellations", err)
	}
	defer cursor.Close(ctx)

	var cancels []*entity.SessionCancel
	if err := cursor.All(ctx, &cancels); err != nil {
		return nil, errors.Internal("Failed to decode cancellations", err)
	}
	return cancels, nil
}

func (r *mongoCancellationRepository) Acknowledge(ctx context.Context, id primitive.ObjectID) (*entity.SessionCancel, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cancel entity.SessionCancel
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "acknowledged": false},
		bson.M{"$set": bson.M{
			"acknowledged":   true,
			"acknowledgedAt": now,
			"updatedAt":      now,
		}},
		opts,
	).Decode(&cancel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to acknowledge cancellation", err)
	}

	return &cancel, nil
}
