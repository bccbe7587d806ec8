// server/internal/notify/notifier.go
package notify

import (
	"context"
	"encoding/json"
	"time"

	"greenscape-api-server/internal/models"
	"greenscape-api-server/internal/socket"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Notifier records a notification as a side effect of a business write.
// Implementations must be best-effort: Notify never returns an error, so
// the primary operation cannot be failed or rolled back by a broken
// notification path.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Service persists notifications to MongoDB and pushes them over the
// WebSocket hub to the targeted driver or customer.
type Service struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

func NewService(db *mongo.Database, hub *socket.Hub) *Service {
	return &Service{DB: db, Hub: hub}
}

func (s *Service) Notify(ctx context.Context, n models.Notification) {
	n.CreatedAt = time.Now()
	n.IsRead = false

	if _, err := s.DB.Collection("notifications").InsertOne(ctx, n); err != nil {
		logrus.WithError(err).WithField("type", n.Type).Warn("Failed to persist notification")
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event":        n.Type,
		"notification": n,
	})
	if err != nil {
		return
	}
	if n.DriverID != "" {
		if err := s.Hub.Send(s.driverRecipient(ctx, n.DriverID), payload); err != nil {
			logrus.WithError(err).WithField("driverId", n.DriverID).Warn("Failed to push notification")
		}
	}
	if n.CustomerID != "" {
		if err := s.Hub.Send(n.CustomerID, payload); err != nil {
			logrus.WithError(err).WithField("customerId", n.CustomerID).Warn("Failed to push notification")
		}
	}
}

// driverRecipient maps a driver id to the key the driver's socket is
// registered under. Sockets are keyed by the login account's serviceNum,
// so the driver record is consulted first; a driver without a linked
// account falls back to the driver id itself.
func (s *Service) driverRecipient(ctx context.Context, driverID string) string {
	var driver struct {
		ServiceNum string `bson:"serviceNum"`
	}
	err := s.DB.Collection("drivers").FindOne(ctx, bson.M{"driverID": driverID}).Decode(&driver)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			logrus.WithError(err).WithField("driverId", driverID).Warn("Failed to resolve notification recipient")
		}
		return driverID
	}
	if driver.ServiceNum == "" {
		return driverID
	}
	return driver.ServiceNum
}

// Noop discards notifications. Used where the notification subsystem is
// disabled, instead of nil checks at every call site.
type Noop struct{}

func (Noop) Notify(ctx context.Context, n models.Notification) {}
