// server/internal/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment settles a batch of unpaid line items for one driver.
// PeriodLabel is derived at batch time (see internal/settlement) and kept
// verbatim so the label survives later edits to the underlying items.
type Payment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PaymentID string             `bson:"paymentID" json:"paymentID"`
	DriverID  string             `bson:"driverID" json:"driverID"`

	PeriodLabel string  `bson:"periodLabel" json:"periodLabel"`
	NetTotal    float64 `bson:"netTotal" json:"netTotal"`

	FreightIDs []string `bson:"freightIDs" json:"freightIDs"`
	FuelIDs    []string `bson:"fuelIDs" json:"fuelIDs"`
	SupplyIDs  []string `bson:"supplyIDs" json:"supplyIDs"`

	Proof *MediaPointer `bson:"proof,omitempty" json:"proof,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
