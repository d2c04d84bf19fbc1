package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	Register("users", func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	})

	Register("carts", func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection("carts").Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}},
			// Serves the stale-cart purge cutoff scan.
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		})
		return err
	})

	Register("payments", func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection("payments").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}},
		})
		return err
	})
}
