package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, one per entity.
const (
	colSessions      = "sessions"
	colProgress      = "session_progress"
	colCounterOffers = "session_counter_offers"
	colCancellations = "session_cancels"
	colWorks         = "works"
	colCompletions   = "session_completions"
	colReports       = "session_reports"
	colUsers         = "users"
)

// Connect opens a Mongo client and pings the deployment.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// EnsureIndexes creates the indexes the invariants rely on. The partial unique
// index on cancellation sessionId is what makes "at most one outstanding
// request per session" hold under concurrent inserts; application-level checks
// alone would race.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(colProgress).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(colCancellations).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"resolution": "pending"}),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(colSessions).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user1Id", Value: 1}, {Key: "user2Id", Value: 1}}},
		{Keys: bson.D{{Key: "user2Id", Value: 1}}},
	})
	if err != nil {
		return err
	}

	for _, col := range []string{colCounterOffers, colWorks, colCompletions, colReports} {
		_, err = db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "sessionId", Value: 1}},
		})
		if err != nil {
			return err
		}
	}

	_, err = db.Collection(colCompletions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}},
	})
	return err
}
