// server/internal/settlement/balance.go
package settlement

import (
	"gestor-frete-api-server/internal/models"
)

// Balance is the driver-side money position derived from their records.
type Balance struct {
	UnpaidFreights float64 `json:"unpaidFreights"`
	UnpaidFuel     float64 `json:"unpaidFuel"`
	UnpaidSupplies float64 `json:"unpaidSupplies"`
	UnpaidTotal    float64 `json:"unpaidTotal"`
}

// DriverBalance nets a driver's completed, still-unpaid records into the
// amount owed to them: freight earnings minus fuel and supply charges.
// Pending freights and fuel purchases do not count yet.
func DriverBalance(freights []models.Freight, fuels []models.FuelPurchase, supplies []models.OtherSupply) Balance {
	var b Balance
	for _, f := range freights {
		if f.Status != models.StatusComplete || f.Paid {
			continue
		}
		b.UnpaidFreights += f.DriverTotal
	}
	for _, p := range fuels {
		if p.Status != models.StatusComplete || p.Paid {
			continue
		}
		b.UnpaidFuel += p.Total
	}
	for _, s := range supplies {
		if s.Paid {
			continue
		}
		b.UnpaidSupplies += s.Total
	}
	b.UnpaidTotal = b.UnpaidFreights - b.UnpaidFuel - b.UnpaidSupplies
	return b
}

// UnpaidItems flattens a driver's completed unpaid records into line items
// for the batcher, tagged by kind.
func UnpaidItems(freights []models.Freight, fuels []models.FuelPurchase, supplies []models.OtherSupply) []LineItem {
	var items []LineItem
	for _, f := range freights {
		if f.Status != models.StatusComplete || f.Paid {
			continue
		}
		items = append(items, LineItem{Kind: KindFreight, ID: f.FreightID, Date: f.Date, Value: f.DriverTotal})
	}
	for _, p := range fuels {
		if p.Status != models.StatusComplete || p.Paid {
			continue
		}
		items = append(items, LineItem{Kind: KindFuel, ID: p.PurchaseID, Date: p.Date, Value: p.Total})
	}
	for _, s := range supplies {
		if s.Paid {
			continue
		}
		items = append(items, LineItem{Kind: KindSupply, ID: s.SupplyID, Date: s.Date, Value: s.Total})
	}
	return items
}
