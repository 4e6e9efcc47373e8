// server/internal/models/freight.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Freight is a single transport job. Totals are always derived from
// distance, weight and the two rates; they are never written from a request.
type Freight struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FreightID  string             `bson:"freightID" json:"freightID"`
	Date       time.Time          `bson:"date" json:"date"`
	DriverID   string             `bson:"driverID" json:"driverID"`
	ClientName string             `bson:"clientName" json:"clientName"`

	DistanceKM float64 `bson:"distanceKM" json:"distanceKM"`
	WeightTons float64 `bson:"weightTons" json:"weightTons"`
	// Price per km·ton on each side of the job.
	DriverRate  float64 `bson:"driverRate" json:"driverRate"`
	CarrierRate float64 `bson:"carrierRate" json:"carrierRate"`
	// Derived: distance × weight × rate.
	DriverTotal  float64 `bson:"driverTotal" json:"driverTotal"`
	CarrierTotal float64 `bson:"carrierTotal" json:"carrierTotal"`

	Status     string `bson:"status" json:"status"` // pending | complete
	Paid       bool   `bson:"paid" json:"paid"`
	ClientPaid bool   `bson:"clientPaid" json:"clientPaid"`
	// PaymentID links the freight to the payment batch that settled it.
	// Empty while unpaid or when paid via a direct toggle.
	PaymentID string `bson:"paymentID,omitempty" json:"paymentID,omitempty"`

	LoadingReceipt   *MediaPointer `bson:"loadingReceipt,omitempty" json:"loadingReceipt,omitempty"`
	UnloadingReceipt *MediaPointer `bson:"unloadingReceipt,omitempty" json:"unloadingReceipt,omitempty"`
	ReceptionReceipt *MediaPointer `bson:"receptionReceipt,omitempty" json:"receptionReceipt,omitempty"`
	Document         *MediaPointer `bson:"document,omitempty" json:"document,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotals recalculates both derived totals in place.
func (f *Freight) ComputeTotals() {
	f.DriverTotal = f.DistanceKM * f.WeightTons * f.DriverRate
	f.CarrierTotal = f.DistanceKM * f.WeightTons * f.CarrierRate
}

// Receipt returns the comprovante stored in the given slot, or nil.
func (f *Freight) Receipt(kind ReceiptKind) *MediaPointer {
	switch kind {
	case ReceiptLoading:
		return f.LoadingReceipt
	case ReceiptUnloading:
		return f.UnloadingReceipt
	case ReceiptReception:
		return f.ReceptionReceipt
	}
	return nil
}
