// server/internal/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentMethodBankSlip = "BankSlip"
	PaymentMethodCash     = "Cash"
)

const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PaymentID   string             `bson:"paymentID" json:"paymentID"` // e.g., "PAY-51E0AB7D"
	OrderID     string             `bson:"orderId" json:"orderId"`
	CustomerID  string             `bson:"customerId" json:"customerId"`
	Amount      float64            `bson:"amount" json:"amount"`
	Method      string             `bson:"method" json:"method"` // BankSlip, Cash
	BankSlipURL string             `bson:"bankSlipUrl,omitempty" json:"bankSlipUrl,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
