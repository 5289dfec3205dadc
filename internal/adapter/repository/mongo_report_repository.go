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

type mongoReportRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoReportRepository(client *mongo.Client, db *mongo.Database) repository.ReportRepository {
	return &mongoReportRepository{client: client, db: db}
}

func (r *mongoReportRepository) collection() *mongo.Collection {
	return r.db.Collection(colReports)
}

func (r *mongoReportRepository) Create(ctx context.Context, report *entity.SessionReport) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now
	if report.Status == "" {
		report.Status = entity.ReportStatusPending
	}

	res, err := r.collection().InsertOne(ctx, report)
	if err != nil {
		return errors.Internal("Failed to create report", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

func (r *mongoReportRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.SessionReport, error) {
	var report entity.SessionReport
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.NotFound("Report", err)
		}
		return nil, errors.Internal("Failed to get report", err)
	}
	return &report, nil
}

func (r *mongoReportRepository) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]*entity.SessionReport, error) {
	cursor, err := r.collection().Find(ctx,
		bson.M{"sessionId": sessionID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, errors.Internal("Failed to list reports", err)
	}
	defer cursor.Close(ctx)

	var reports []*entity.SessionReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, errors.Internal("Failed to decode reports", err)
	}
	return reports, nil
}

func (r *mongoReportRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.SessionReport, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reports", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list reports", err)
	}
	defer cursor.Close(ctx)

	var reports []*entity.SessionReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, errors.Internal("Failed to decode reports", err)
	}
	return reports, total, nil
}

func (r *mongoReportRepository) StartInvestigation(ctx context.Context, id primitive.ObjectID) (*entity.SessionReport, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var report entity.SessionReport
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": entity.ReportStatusPending},
		bson.M{"$set": bson.M{
			"status":    entity.ReportStatusUnderReview,
			"updatedAt": time.Now(),
		}},
		opts,
	).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.Internal("Failed to start investigation", err)
	}

	return &report, nil
}

// Resolve runs the one genuine cross-aggregate write in the system: resolving
// the report and, for a suspend action, flipping the reported user's
// suspension, both inside a single Mongo transaction.
func (r *mongoReportRepository) Resolve(ctx context.Context, id primitive.ObjectID, resolution repository.ReportResolution) (*entity.SessionReport, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, errors.Internal("Failed to start database session", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		var current entity.SessionReport
		if err := r.collection().FindOne(sc, bson.M{"_id": id}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, errors.NotFound("Report", err)
			}
			return nil, errors.Internal("Failed to load report", err)
		}
		if current.Status == entity.ReportStatusResolved {
			return nil, errors.BadRequest("Report has already been resolved", nil)
		}

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		var resolved entity.SessionReport
		err := r.collection().FindOneAndUpdate(sc,
			bson.M{"_id": id, "status": bson.M{"$ne": entity.ReportStatusResolved}},
			bson.M{"$set": bson.M{
				"status":        entity.ReportStatusResolved,
				"adminResponse": resolution.Message,
				"adminAction":   resolution.Action,
				"adminId":       resolution.AdminID,
				"resolvedAt":    now,
				"updatedAt":     now,
			}},
			opts,
		).Decode(&resolved)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, errors.BadRequest("Report has already been resolved", nil)
			}
			return nil, errors.Internal("Failed to resolve report", err)
		}

		if resolution.Action == entity.ReportActionSuspend {
			res, err := r.db.Collection(colUsers).UpdateOne(sc,
				bson.M{"_id": resolved.ReportedUser},
				bson.M{"$set": bson.M{
					"suspension.isSuspended": true,
					"suspension.suspendedAt": now,
					"suspension.reason":      resolution.Message,
					"updatedAt":              now,
				}},
			)
			if err != nil {
				return nil, errors.Internal("Failed to suspend reported user", err)
			}
			if res.MatchedCount == 0 {
				return nil, errors.NotFound("Reported user", nil)
			}
		}

		return &resolved, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*entity.SessionReport), nil
}
