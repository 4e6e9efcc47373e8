package settlement

import (
	"testing"
	"time"

	"gestor-frete-api-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func completeFreight(id string, d time.Time, driverTotal float64, paid bool) models.Freight {
	return models.Freight{
		FreightID:   id,
		Date:        d,
		DriverTotal: driverTotal,
		Status:      models.StatusComplete,
		Paid:        paid,
	}
}

func TestDriverBalanceNetsFuelAndSupplies(t *testing.T) {
	freights := []models.Freight{
		completeFreight("FRT-1", date(2026, 1, 12), 600, false),
		completeFreight("FRT-2", date(2026, 1, 13), 400, false),
		completeFreight("FRT-3", date(2026, 1, 14), 999, true), // already paid
	}
	fuels := []models.FuelPurchase{
		{PurchaseID: "ABS-1", Total: 200, Status: models.StatusComplete},
		{PurchaseID: "ABS-2", Total: 50, Status: models.StatusComplete, Paid: true},
	}
	supplies := []models.OtherSupply{
		{SupplyID: "INS-1", Total: 50},
		{SupplyID: "INS-2", Total: 30, Paid: true},
	}

	b := DriverBalance(freights, fuels, supplies)

	assert.InDelta(t, 1000.0, b.UnpaidFreights, 0.001)
	assert.InDelta(t, 200.0, b.UnpaidFuel, 0.001)
	assert.InDelta(t, 50.0, b.UnpaidSupplies, 0.001)
	assert.InDelta(t, 750.0, b.UnpaidTotal, 0.001)
}

func TestDriverBalanceIgnoresPendingRecords(t *testing.T) {
	freights := []models.Freight{
		{FreightID: "FRT-1", DriverTotal: 500, Status: models.StatusPending},
	}
	fuels := []models.FuelPurchase{
		{PurchaseID: "ABS-1", Total: 100, Status: models.StatusPending},
	}

	b := DriverBalance(freights, fuels, nil)
	assert.Zero(t, b.UnpaidTotal)
}

func TestDriverBalanceEmptyIsZero(t *testing.T) {
	b := DriverBalance(nil, nil, nil)
	assert.Zero(t, b.UnpaidTotal)
	assert.Equal(t, "-", FormatBRL(b.UnpaidTotal))
}

func TestUnpaidItemsTagsKinds(t *testing.T) {
	freights := []models.Freight{completeFreight("FRT-1", date(2026, 1, 12), 600, false)}
	fuels := []models.FuelPurchase{{PurchaseID: "ABS-1", Date: date(2026, 1, 12), Total: 200, Status: models.StatusComplete}}
	supplies := []models.OtherSupply{{SupplyID: "INS-1", Date: date(2026, 1, 13), Total: 50}}

	items := UnpaidItems(freights, fuels, supplies)

	assert.Len(t, items, 3)
	assert.Equal(t, KindFreight, items[0].Kind)
	assert.Equal(t, KindFuel, items[1].Kind)
	assert.Equal(t, KindSupply, items[2].Kind)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "-", FormatBRL(0))
	// Values below half a centavo round to zero cents and render as "-"
	// too, in either direction.
	assert.Equal(t, "-", FormatBRL(0.004))
	assert.Equal(t, "-", FormatBRL(-0.004))
	assert.Equal(t, "R$ 750,00", FormatBRL(750))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(1234.56))
	assert.Equal(t, "R$ 1.234.567,89", FormatBRL(1234567.89))
	assert.Equal(t, "-R$ 12,30", FormatBRL(-12.3))
}
