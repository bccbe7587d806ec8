// server/cmd/api/main.go
package main

import (
	"log"

	"greenscape-api-server/config"
	"greenscape-api-server/internal/api/routes"
	"greenscape-api-server/internal/auth"
	"greenscape-api-server/internal/database"
	"greenscape-api-server/internal/logger"
	"greenscape-api-server/internal/notify"
	"greenscape-api-server/internal/s3"
	"greenscape-api-server/internal/socket"
	"greenscape-api-server/internal/whatsapp"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	logger.Setup()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := database.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	jwtManager := auth.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 uploader: %v", err)
	}

	wsHub := socket.NewHub()
	notifier := notify.NewService(db, wsHub)
	whatsAppClient := whatsapp.NewClient(cfg.Twilio)
	if whatsAppClient.Simulated() {
		logrus.Warn("Twilio credentials missing, WhatsApp sends will be simulated")
	}

	router := routes.SetupRouter(cfg, db, jwtManager, s3Uploader, wsHub, notifier, whatsAppClient)

	logrus.WithField("port", cfg.Server.Port).Info("Starting API server")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
