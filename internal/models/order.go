// server/internal/models/order.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical order statuses. The old split between the two legacy status
// sets is reconciled here into one enum with an explicit transition table.
const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusAssigned  = "Assigned"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// orderTransitions maps a status to the statuses reachable from it.
// Completed and Cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusAssigned, OrderStatusCancelled},
	OrderStatusAssigned:  {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// IsValidOrderStatus reports whether s is a member of the status enum.
func IsValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem carries the cart line snapshot the order was created from.
type OrderItem struct {
	ItemID       string  `bson:"itemId" json:"itemId"`
	ItemName     string  `bson:"itemName" json:"itemName"`
	PricePerItem float64 `bson:"pricePerItem" json:"pricePerItem"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	TotalPrice   float64 `bson:"totalPrice" json:"totalPrice"`
}

type Order struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID            string             `bson:"orderID" json:"orderID"` // e.g., "ORD-9C3E51AB"
	CustomerID         string             `bson:"customerId" json:"customerId"`
	Items              []OrderItem        `bson:"items" json:"items"`
	TotalAmount        float64            `bson:"totalAmount" json:"totalAmount"`
	Status             string             `bson:"status" json:"status"`
	PaymentStatus      string             `bson:"paymentStatus" json:"paymentStatus"` // unpaid, paid
	PaymentID          string             `bson:"paymentID,omitempty" json:"paymentID,omitempty"`
	AssignedDriver     string             `bson:"assignedDriver,omitempty" json:"assignedDriver,omitempty"`
	AssignedVehicle    string             `bson:"assignedVehicle,omitempty" json:"assignedVehicle,omitempty"`
	DeliveryAssignment string             `bson:"deliveryAssignment,omitempty" json:"deliveryAssignment,omitempty"`
	AssignedAt         time.Time          `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	OrderDate          time.Time          `bson:"orderDate" json:"orderDate"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Rental order statuses.
const (
	RentalStatusPending  = "Pending"
	RentalStatusActive   = "Active"
	RentalStatusReturned = "Returned"
)

// RentalOrder books machinery for a number of days. Creation decrements
// Machinery.Quantity, return/deletion refunds it.
type RentalOrder struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RentalID   string             `bson:"rentalID" json:"rentalID"` // e.g., "RNT-0A77FE21"
	MachineID  string             `bson:"machineID" json:"machineID"`
	CustomerID string             `bson:"customerId" json:"customerId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Duration   int                `bson:"duration" json:"duration"` // days
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
