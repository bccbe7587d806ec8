// server/internal/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssignmentStatusAssigned  = "Assigned"
	AssignmentStatusInTransit = "In Transit"
	AssignmentStatusDelivered = "Delivered"
)

// IsValidAssignmentStatus reports whether s is a member of the
// assignment status enum.
func IsValidAssignmentStatus(s string) bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusInTransit, AssignmentStatusDelivered:
		return true
	}
	return false
}

// DeliveryAssignment pairs an Order with a Driver and a Vehicle.
type DeliveryAssignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssignmentID string             `bson:"assignmentID" json:"assignmentID"` // e.g., "ASG-3F90CE12"
	OrderID      string             `bson:"orderId" json:"orderId"`
	DriverID     string             `bson:"driverId" json:"driverId"`
	VehicleID    string             `bson:"vehicleId" json:"vehicleId"`
	Status       string             `bson:"status" json:"status"`
	AssignedDate time.Time          `bson:"assignedDate" json:"assignedDate"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
