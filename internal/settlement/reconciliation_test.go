package settlement

import (
	"testing"

	"gestor-frete-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestReconcileClientMargin(t *testing.T) {
	freights := []models.Freight{
		{
			FreightID:    "FRT-1",
			Status:       models.StatusComplete,
			CarrierTotal: 500,
			ClientPaid:   true,
			DriverTotal:  400,
			Paid:         true,
		},
		{
			FreightID:    "FRT-2",
			Status:       models.StatusComplete,
			CarrierTotal: 300,
			ClientPaid:   false,
			DriverTotal:  100,
			Paid:         false,
		},
	}

	s := ReconcileClient(freights, nil, nil)

	assert.InDelta(t, 500.0, s.Received, 0.001)
	assert.InDelta(t, 300.0, s.ToReceive, 0.001)
	assert.InDelta(t, 400.0, s.PaidToDrivers, 0.001)
	assert.InDelta(t, 100.0, s.OwedToDrivers, 0.001)
	// (500+300) - (400+100) = 300
	assert.InDelta(t, 300.0, s.Margin, 0.001)
}

func TestReconcileClientFuelReducesDriverCost(t *testing.T) {
	freights := []models.Freight{
		{
			FreightID:    "FRT-1",
			Status:       models.StatusComplete,
			CarrierTotal: 1000,
			DriverTotal:  600,
		},
	}
	fuels := []models.FuelPurchase{
		{PurchaseID: "ABS-1", Total: 150, Status: models.StatusComplete},
	}
	supplies := []models.OtherSupply{
		{SupplyID: "INS-1", Total: 50},
	}

	s := ReconcileClient(freights, fuels, supplies)

	assert.InDelta(t, 1000.0, s.ToReceive, 0.001)
	assert.InDelta(t, 400.0, s.OwedToDrivers, 0.001) // 600 - 150 - 50
	assert.InDelta(t, 600.0, s.Margin, 0.001)
}

func TestReconcileClientIgnoresPendingFreights(t *testing.T) {
	freights := []models.Freight{
		{FreightID: "FRT-1", Status: models.StatusPending, CarrierTotal: 1000, DriverTotal: 600},
	}

	s := ReconcileClient(freights, nil, nil)
	assert.Zero(t, s.Received)
	assert.Zero(t, s.ToReceive)
	assert.Zero(t, s.Margin)
}
