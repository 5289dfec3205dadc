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

type mongoCounterOfferRepository struct {
	db *mongo.Database
}

func NewMongoCounterOfferRepository(db *mongo.Database) repository.CounterOfferRepository {
	return &mongoCounterOfferRepository{db: db}
}

func (r *mongoCounterOfferRepository) collection() *mongo.Collection {
	return r.db.Collection(colCounterOffers)
}

func (r *mongoCounterOfferRepository) Create(ctx context.Context, offer *entity.SessionCounterOffer) error {
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	if offer.Status == "" {
		offer.Status = entity.CounterOfferStatusPending
	}

	res, err := r.collection().InsertOne(ctx, offer)
	if err != nil {
		return errors.Internal("Failed to create counter-offer", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		offer.ID = oid
	}
	return nil
}

func (r *mongoCounterOfferRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionCounterOffer, error) {
	var offer entity.SessionCounterOffer
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Counter-offer", err)
		}
		return nil, errors.Internal("Failed to get counter-offer", err)
	}
	return &offer, nil
}

func (r *mongoCounterOfferRepository) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionCounterOffer, error) {
	cursor, err := r.collection().Find(ctx,
		bson.M{"originalSessionId": sessionID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Internal("Failed to list counter-offers", err)
	}
	defer cursor.Close(ctx)

	var offers []*entity.SessionCounterOffer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, errors.Internal("Failed to decode counter-offers", err)
	}
	return offers, nil
}

func (r *mongoCounterOfferRepository) Respond(ctx context.Context, id primitive.ObjectID, status string) (*entity.SessionCounterOffer, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var offer entity.SessionCounterOffer
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.CounterOfferStatusPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		opts,
	).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to respond to counter-offer", err)
	}

	return &offer, nil
}
