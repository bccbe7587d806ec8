// server/internal/models/driver.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DriverAvailable = "Available"
	DriverAssigned  = "Assigned"
	DriverOnLeave   = "On Leave"
)

type Driver struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DriverID     string             `bson:"driverID" json:"driverID"` // e.g., "DRV-18C5B0F3"
	ServiceNum   string             `bson:"serviceNum,omitempty" json:"serviceNum,omitempty"` // login account, set when onboarded
	Name         string             `bson:"name" json:"name"`
	Contact      string             `bson:"contact" json:"contact"`     // 10 digits
	LicenseNo    string             `bson:"licenseNo" json:"licenseNo"` // unique
	Availability string             `bson:"availability" json:"availability"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
