// server/internal/database/seeder.go
package database

import (
	"context"
	"time"

	"greenscape-api-server/internal/auth"
	"greenscape-api-server/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the default admin account if no user with that email
// exists yet. Idempotent across restarts.
func SeedAdmin(db *mongo.Database) error {
	userCollection := db.Collection("users")
	adminEmail := "admin@greenscape.lk"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": adminEmail})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := models.User{
		ServiceNum: "EMP-ADMIN001",
		Email:      adminEmail,
		Name:       "System Admin",
		Password:   hashed,
		Role:       "admin",
		CreatedAt:  time.Now(),
	}
	if _, err := userCollection.InsertOne(context.Background(), admin); err != nil {
		return err
	}
	logrus.WithField("email", adminEmail).Info("Seeded default admin user")
	return nil
}
