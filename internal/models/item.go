// server/internal/models/item.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Item is a shop inventory entry. Quantity is only mutated by order
// creation (decrement) and order cancellation (refund).
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemID      string             `bson:"itemID" json:"itemID"` // User-friendly unique ID, e.g., "ITM-4F2A91C0"
	ItemName    string             `bson:"itemname" json:"itemname"`
	Category    string             `bson:"category" json:"category"` // e.g., "Plants", "Tools", "Fertilizer"
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Machinery is rentable equipment. Quantity tracks units currently in
// the yard; rentals decrement it, returns refund it.
type Machinery struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MachineID   string             `bson:"machineID" json:"machineID"` // e.g., "MCH-7B01D4E2"
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	RatePerDay  float64            `bson:"ratePerDay" json:"ratePerDay"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
