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

type mongoSessionRepository struct {
	db *mongo.Database
}

func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{db: db}
}

func (r *mongoSessionRepository) collection() *mongo.Collection {
	return r.db.Collection(colSessions)
}

func (r *mongoSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	res, err := r.collection().InsertOne(ctx, session)
	if err != nil {
		return errors.Internal("Failed to create session", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		session.ID = oid
	}
	return nil
}

func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Session, error) {
	var session entity.Session
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Session", err)
		}
		return nil, errors.Internal("Failed to get session", err)
	}
	return &session, nil
}

func (r *mongoSessionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]*entity.Session, int64, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"user1Id": userID},
			{"user2Id": userID},
		},
	}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Internal("Failed to count sessions", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list sessions", err)
	}
	defer cursor.Close(ctx)

	var sessions []*entity.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, errors.Internal("Failed to decode sessions", err)
	}

	return sessions, total, nil
}

func (r *mongoSessionRepository) ListBetweenUsers(ctx context.Context, userA, userB primitive.ObjectID) ([]*entity.Session, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"user1Id": userA, "user2Id": userB},
			{"user1Id": userB, "user2Id": userA},
		},
	}

	cursor, err := r.collection().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Internal("Failed to list sessions between users", err)
	}
	defer cursor.Close(ctx)

	var sessions []*entity.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, errors.Internal("Failed to decode sessions", err)
	}

	return sessions, nil
}

func (r *mongoSessionRepository) Transition(ctx context.Context, id primitive.ObjectID, t repository.SessionTransition) (*entity.Session, error) {
	now := time.Now()
	set := bson.M{
		"status":     t.ToStatus,
		"isAccepted": entity.AcceptedFlagFor(t.ToStatus),
		"updatedAt":  now,
	}
	if t.ToStatus == entity.SessionStatusRejected {
		set["rejectedBy"] = t.ActorID
		set["rejectedAt"] = now
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session entity.Session
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": t.FromStatus},
		bson.M{"$set": set},
		opts,
	).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to transition session", err)
	}

	return &session, nil
}

func (r *mongoSessionRepository) SetProgressRefs(ctx context.Context, id, progress1ID, progress2ID primitive.ObjectID) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"progress1Id": progress1ID,
			"progress2Id": progress2ID,
			"updatedAt":   time.Now(),
		}},
	)
	if err != nil {
		return errors.Internal("Failed to link progress documents", err)
	}
	return nil
}

func (r *mongoSessionRepository) MarkAmended(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isAmmended": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return errors.Internal("Failed to mark session as amended", err)
	}
	return nil
}

func (r *mongoSessionRepository) ApplyCounterOffer(ctx context.Context, id primitive.ObjectID, offer *entity.SessionCounterOffer) (*entity.Session, error) {
	accepted := true
	set := bson.M{
		"skill1Id":     offer.Skill1ID,
		"skill2Id":     offer.Skill2ID,
		"description1": offer.Description1,
		"description2": offer.Description2,
		"startDate":    offer.StartDate,
		"status":       entity.SessionStatusActive,
		"isAccepted":   accepted,
		"updatedAt":    time.Now(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var session entity.Session
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.SessionStatusPending},
		bson.M{"$set": set},
		opts,
	).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to apply counter-offer", err)
	}

	return &session, nil
}

func (r *mongoSessionRepository) RepairStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     status,
			"isAccepted": entity.AcceptedFlagFor(status),
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		return errors.Internal("Failed to repair session status", err)
	}
	return nil
}
