// server/internal/settlement/reconciliation.go
package settlement

import (
	"gestor-frete-api-server/internal/models"
)

// ClientSummary is the read-only profit view for one client: what the
// carrier already received from them, what is still open, what their
// freights cost in driver settlements, and the resulting margin.
type ClientSummary struct {
	Received      float64 `json:"received"`
	ToReceive     float64 `json:"toReceive"`
	PaidToDrivers float64 `json:"paidToDrivers"`
	OwedToDrivers float64 `json:"owedToDrivers"`
	Margin        float64 `json:"margin"`
}

// ReconcileClient computes the summary from the client's completed
// freights and the fuel/supply records of the drivers attributed to them.
// Driver-side amounts are net: fuel and supply charges recovered from the
// drivers reduce what the freights cost the carrier.
func ReconcileClient(freights []models.Freight, fuels []models.FuelPurchase, supplies []models.OtherSupply) ClientSummary {
	var s ClientSummary
	for _, f := range freights {
		if f.Status != models.StatusComplete {
			continue
		}
		if f.ClientPaid {
			s.Received += f.CarrierTotal
		} else {
			s.ToReceive += f.CarrierTotal
		}
		if f.Paid {
			s.PaidToDrivers += f.DriverTotal
		} else {
			s.OwedToDrivers += f.DriverTotal
		}
	}
	for _, p := range fuels {
		if p.Status != models.StatusComplete {
			continue
		}
		if p.Paid {
			s.PaidToDrivers -= p.Total
		} else {
			s.OwedToDrivers -= p.Total
		}
	}
	for _, sup := range supplies {
		if sup.Paid {
			s.PaidToDrivers -= sup.Total
		} else {
			s.OwedToDrivers -= sup.Total
		}
	}
	s.Margin = (s.Received + s.ToReceive) - (s.PaidToDrivers + s.OwedToDrivers)
	return s
}
