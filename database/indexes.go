package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"golang-advisorybackend/config"
)

// EnsureIndexes creates the indexes every collection relies on. Index
// creation is idempotent so this runs on every startup.
func EnsureIndexes(ctx context.Context, client *mongo.Client, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"user": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"appointment": {
			{Keys: bson.D{{Key: "appointment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "start_time", Value: -1}}},
			{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "start_time", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "start_time", Value: 1}}},
			{Keys: bson.D{{Key: "location.type", Value: 1}}},
		},
		"blogpost": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"insight": {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"newsletter": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"investment": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for name, models := range indexes {
		coll := OpenCollection(client, cfg, name)
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}

	return nil
}
