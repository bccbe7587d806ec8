// server/internal/database/mongo.go
package database

import (
	"context"
	"time"

	"greenscape-api-server/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a MongoDB client and pings it before returning the
// configured database handle.
func Connect(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(cfg.DBName), nil
}

// EnsureIndexes creates the unique and lookup indexes the handlers rely
// on. Safe to call on every startup.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"carts":     {Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: unique},
		"items":     {Keys: bson.D{{Key: "itemID", Value: 1}}, Options: unique},
		"orders":    {Keys: bson.D{{Key: "orderID", Value: 1}}, Options: unique},
		"drivers":   {Keys: bson.D{{Key: "licenseNo", Value: 1}}, Options: unique},
		"vehicles":  {Keys: bson.D{{Key: "vehicleNo", Value: 1}}, Options: unique},
		"users":     {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		"employees": {Keys: bson.D{{Key: "serviceNum", Value: 1}}, Options: unique},
	}
	for coll, model := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}

	// Non-unique lookup indexes for the hot list endpoints.
	lookups := map[string]bson.D{
		"delivery_assignments": {{Key: "driverId", Value: 1}},
		"notifications":        {{Key: "createdAt", Value: -1}},
	}
	for coll, keys := range lookups {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			return err
		}
	}
	return nil
}
