package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Any other value is rejected on update.
const (
	StatusNotProcessed = "Not Processed"
	StatusProcessing   = "Processing"
	StatusShipped      = "Shipped"
	StatusDelivered    = "Delivered"
	StatusCancelled    = "Cancelled"
)

// ValidStatus reports whether s is a member of the order status enumeration.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotProcessed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentResult is the snapshot of a gateway sale stored on the order.
type PaymentResult struct {
	TransactionID string  `bson:"transaction_id" json:"transaction_id"`
	Status        string  `bson:"status" json:"status"`
	Amount        float64 `bson:"amount" json:"amount"`
	Success       bool    `bson:"success" json:"success"`
}

// Order represents a completed purchase
type Order struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	Payment   PaymentResult        `bson:"payment" json:"payment"`
	Buyer     primitive.ObjectID   `bson:"buyer" json:"buyer"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}

// OrderView is the populated shape returned by order listings: product
// summaries without photo bytes and the buyer's name instead of a bare id.
type OrderView struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Products  []Product          `json:"products"`
	Payment   PaymentResult      `json:"payment"`
	Buyer     BuyerRef           `json:"buyer"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

// BuyerRef is the populated buyer reference on an order view.
type BuyerRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}
