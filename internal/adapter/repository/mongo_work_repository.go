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

type mongoWorkRepository struct {
	db *mongo.Database
}

func NewMongoWorkRepository(db *mongo.Database) repository.WorkRepository {
	return &mongoWorkRepository{db: db}
}

func (r *mongoWorkRepository) collection() *mongo.Collection {
	return r.db.Collection(colWorks)
}

func (r *mongoWorkRepository) Create(ctx context.Context, work *entity.Work) error {
	now := time.Now()
	work.CreatedAt = now
	work.UpdatedAt = now
	if work.AcceptanceStatus == "" {
		work.AcceptanceStatus = entity.WorkStatusPending
	}

	res, err := r.collection().InsertOne(ctx, work)
	if err != nil {
		return errors.Internal("Failed to create work submission", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		work.ID = oid
	}
	return nil
}

func (r *mongoWorkRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Work, error) {
	var work entity.Work
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&work)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Work", err)
		}
		return nil, errors.Internal("Failed to get work", err)
	}
	return &work, nil
}

func (r *mongoWorkRepository) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.Work, error) {
	return r.list(ctx, bson.M{"sessionId": sessionID})
}

func (r *mongoWorkRepository) ListBySessionAndProvider(ctx context.Context, sessionID, providerID primitive.ObjectID) ([]*entity.Work, error) {
	return r.list(ctx, bson.M{"sessionId": sessionID, "provideUser": providerID})
}

func (r *mongoWorkRepository) list(ctx context.Context, filter bson.M) ([]*entity.Work, error) {
	cursor, err := r.collection().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "provideDate", Value: -1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list works", err)
	}
	defer cursor.Close(ctx)

	var works []*entity.Work
	if err := cursor.All(ctx, &works); err != nil {
		return nil, errors.Internal("Failed to decode works", err)
	}
	return works, nil
}

func (r *mongoWorkRepository) Review(ctx context.Context, id primitive.ObjectID, status string) (*entity.Work, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var work entity.Work
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "acceptanceStatus": entity.WorkStatusPending},
		bson.M{"$set": bson.M{
			"acceptanceStatus": status,
			"reviewedAt":       now,
			"updatedAt":        now,
		}},
		opts,
	).Decode(&work)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to review work", err)
	}

	return &work, nil
}
