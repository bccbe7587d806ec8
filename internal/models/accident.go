// server/internal/models/accident.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AccidentReported           = "Reported"
	AccidentUnderInvestigation = "Under Investigation"
	AccidentResolved           = "Resolved"
)

// IsValidAccidentStatus reports whether s is a member of the accident
// status enum.
func IsValidAccidentStatus(s string) bool {
	switch s {
	case AccidentReported, AccidentUnderInvestigation, AccidentResolved:
		return true
	}
	return false
}

type AccidentReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID    string             `bson:"reportID" json:"reportID"` // e.g., "ACC-D2B614F0"
	DriverID    string             `bson:"driverId" json:"driverId"`
	VehicleNo   string             `bson:"vehicleNo" json:"vehicleNo"`
	DeliveryID  string             `bson:"deliveryId,omitempty" json:"deliveryId,omitempty"`
	Description string             `bson:"description" json:"description"`
	PhotoURLs   []string           `bson:"photos" json:"photos"`
	Time        time.Time          `bson:"time" json:"time"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
