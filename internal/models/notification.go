// server/internal/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationPaymentReceived  = "payment_received"
	NotificationDeliveryAssigned = "delivery_assigned"
	NotificationOrderCreated     = "order_created"
	NotificationAccidentReported = "accident_reported"
)

// Notification is written as a best-effort side effect of payments,
// assignments, order creation and accident reports. A failed write is
// logged and never surfaced to the caller.
type Notification struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type             string             `bson:"type" json:"type"`
	OrderID          string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CustomerID       string             `bson:"customerId,omitempty" json:"customerId,omitempty"`
	DriverID         string             `bson:"driverId,omitempty" json:"driverId,omitempty"`
	AccidentReportID string             `bson:"accidentReportId,omitempty" json:"accidentReportId,omitempty"`
	Message          string             `bson:"message" json:"message"`
	IsRead           bool               `bson:"isRead" json:"isRead"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
