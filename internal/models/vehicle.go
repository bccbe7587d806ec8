// server/internal/models/vehicle.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VehicleAvailable   = "Available"
	VehicleInUse       = "In Use"
	VehicleMaintenance = "Maintenance"
)

type Vehicle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID string             `bson:"vehicleID" json:"vehicleID"` // e.g., "VEH-6D20A1BC"
	VehicleNo string             `bson:"vehicleNo" json:"vehicleNo"` // plate number, unique
	Type      string             `bson:"type" json:"type"`           // e.g., "Truck", "Van", "Lorry"
	Capacity  float64            `bson:"capacity" json:"capacity"`   // tonnes
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
