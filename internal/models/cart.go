// server/internal/models/cart.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLine is one item entry inside a session's cart. PricePerItem is a
// snapshot taken when the line was added; later price changes on the Item
// do not touch existing lines.
type CartLine struct {
	ItemID       string  `bson:"itemId" json:"itemId"`
	ItemName     string  `bson:"itemName" json:"itemName"`
	PricePerItem float64 `bson:"pricePerItem" json:"pricePerItem"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	TotalPrice   float64 `bson:"totalPrice" json:"totalPrice"`
	ImageURL     string  `bson:"imageUrl" json:"imageUrl"`
}

// Cart holds at most one document per session key. It is deleted wholesale
// once converted into an Order.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   string             `bson:"sessionId" json:"sessionId"`
	CustomerID  string             `bson:"customerId,omitempty" json:"customerId,omitempty"`
	Items       []CartLine         `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Recalculate refreshes every line total and the cart total.
func (c *Cart) Recalculate() {
	total := 0.0
	for i := range c.Items {
		c.Items[i].TotalPrice = float64(c.Items[i].Quantity) * c.Items[i].PricePerItem
		total += c.Items[i].TotalPrice
	}
	c.TotalAmount = total
}
