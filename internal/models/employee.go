// server/internal/models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EmployeeStatusOpen    = "Open"
	EmployeeStatusApprove = "Approve"
)

// Employee roles an application can be filed for.
const (
	RoleDriver     = "driver"
	RoleLandscaper = "landscaper"
	RoleManagement = "management"
)

// EmployeeApplication is an onboarding record. It stays Open until an
// admin approves it (password generated, User + role record created,
// WhatsApp credentials sent) or rejects it (record deleted).
type EmployeeApplication struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceNum string             `bson:"serviceNum" json:"serviceNum"` // unique, e.g., "EMP-77C3A1B9"
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Role       string             `bson:"role" json:"role"` // driver, landscaper, management
	CVUrl      string             `bson:"cvUrl,omitempty" json:"cvUrl,omitempty"`
	Status     string             `bson:"status" json:"status"`
	ApprovedBy string             `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	ApprovedAt time.Time          `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Landscaper is the role record created when a landscaper application is
// approved.
type Landscaper struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceNum string             `bson:"serviceNum" json:"serviceNum"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ManagementEmployee is the role record for approved management staff.
type ManagementEmployee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceNum string             `bson:"serviceNum" json:"serviceNum"`
	Name       string             `bson:"name" json:"name"`
	Phone      string             `bson:"phone" json:"phone"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
