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

type mongoProgressRepository struct {
	db *mongo.Database
}

func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{db: db}
}

func (r *mongoProgressRepository) collection() *mongo.Collection {
	return r.db.Collection(colProgress)
}

func (r *mongoProgressRepository) Create(ctx context.Context, progress *entity.SessionProgress) error {
	now := time.Now()
	progress.CreatedAt = now
	progress.UpdatedAt = now
	if progress.Status == "" {
		progress.Status = entity.ProgressStatusNotStarted
	}

	res, err := r.collection().InsertOne(ctx, progress)
	if err != nil {
		return errors.Internal("Failed to create progress", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		progress.ID = oid
	}
	return nil
}

func (r *mongoProgressRepository) GetBySessionAndUser(ctx context.Context, sessionID, userID primitive.ObjectID) (*entity.SessionProgress, error) {
	var progress entity.SessionProgress
	err := r.collection().FindOne(ctx, bson.M{"sessionId": sessionID, "userId": userID}).Decode(&progress)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Progress", err)
		}
		return nil, errors.Internal("Failed to get progress", err)
	}
	return &progress, nil
}

func (r *mongoProgressRepository) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionProgress, error) {
	cursor, err := r.collection().Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, errors.Internal("Failed to list progress", err)
	}
	defer cursor.Close(ctx)

	var docs []*entity.SessionProgress
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Internal("Failed to decode progress", err)
	}
	return docs, nil
}

func (r *mongoProgressRepository) Upsert(ctx context.Context, sessionID, userID primitive.ObjectID, update repository.ProgressUpdate) (*entity.SessionProgress, error) {
	now := time.Now()

	set := bson.M{"updatedAt": now}
	if update.CompletionPercentage != nil {
		set["completionPercentage"] = *update.CompletionPercentage
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}

	// Defaults only apply when the upsert inserts; $set and $setOnInsert may
	// not name the same field.
	setOnInsert := bson.M{
		"sessionId": sessionID,
		"userId":    userID,
		"createdAt": now,
	}
	if update.CompletionPercentage == nil {
		setOnInsert["completionPercentage"] = 0
	}
	if update.Status == nil {
		setOnInsert["status"] = entity.ProgressStatusNotStarted
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var progress entity.SessionProgress
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"sessionId": sessionID, "userId": userID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	).Decode(&progress)
	if err != nil {
		return nil, errors.Internal("Failed to upsert progress", err)
	}

	return &progress, nil
}
