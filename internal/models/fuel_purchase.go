// server/internal/models/fuel_purchase.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FuelPurchase is an abastecimento attributed to a driver, registered by a
// fuel attendant or by the driver. Total is derived from liters × price.
type FuelPurchase struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PurchaseID string             `bson:"purchaseID" json:"purchaseID"`
	Date       time.Time          `bson:"date" json:"date"`
	DriverID   string             `bson:"driverID" json:"driverID"`
	ClientName string             `bson:"clientName,omitempty" json:"clientName,omitempty"`

	Liters        float64 `bson:"liters" json:"liters"`
	PricePerLiter float64 `bson:"pricePerLiter" json:"pricePerLiter"`
	Total         float64 `bson:"total" json:"total"` // derived

	Status    string `bson:"status" json:"status"` // pending | complete
	Paid      bool   `bson:"paid" json:"paid"`
	PaymentID string `bson:"paymentID,omitempty" json:"paymentID,omitempty"`

	Receipt *MediaPointer `bson:"receipt,omitempty" json:"receipt,omitempty"`

	RegisteredBy string    `bson:"registeredBy" json:"registeredBy"` // account id of the posto/driver that created it
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotal recalculates the derived total in place.
func (p *FuelPurchase) ComputeTotal() {
	p.Total = p.Liters * p.PricePerLiter
}
