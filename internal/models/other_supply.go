// server/internal/models/other_supply.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OtherSupply is an "outros insumos" record: any miscellaneous expense
// charged against a driver (tolls, parts, tarps...).
type OtherSupply struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SupplyID string             `bson:"supplyID" json:"supplyID"`
	Date     time.Time          `bson:"date" json:"date"`
	DriverID string             `bson:"driverID" json:"driverID"`

	Quantity    float64 `bson:"quantity" json:"quantity"`
	Description string  `bson:"description" json:"description"`
	UnitPrice   float64 `bson:"unitPrice" json:"unitPrice"`
	Total       float64 `bson:"total" json:"total"` // derived

	Paid      bool   `bson:"paid" json:"paid"`
	PaymentID string `bson:"paymentID,omitempty" json:"paymentID,omitempty"`

	Receipt *MediaPointer `bson:"receipt,omitempty" json:"receipt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotal recalculates the derived total in place.
func (s *OtherSupply) ComputeTotal() {
	s.Total = s.Quantity * s.UnitPrice
}
