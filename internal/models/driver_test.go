package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func decodePlates(t *testing.T, doc bson.M) PlateList {
	t.Helper()

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var out struct {
		Plates PlateList `bson:"plates"`
	}
	require.NoError(t, bson.Unmarshal(raw, &out))
	return out.Plates
}

func TestPlateListDecodesArray(t *testing.T) {
	plates := decodePlates(t, bson.M{"plates": []string{"ABC1D23", "XYZ9K88"}})
	assert.Equal(t, PlateList{"ABC1D23", "XYZ9K88"}, plates)
}

func TestPlateListDecodesLegacyJSONString(t *testing.T) {
	plates := decodePlates(t, bson.M{"plates": `["ABC1D23","XYZ9K88"]`})
	assert.Equal(t, PlateList{"ABC1D23", "XYZ9K88"}, plates)
}

func TestPlateListDecodesBareString(t *testing.T) {
	plates := decodePlates(t, bson.M{"plates": "ABC1D23"})
	assert.Equal(t, PlateList{"ABC1D23"}, plates)
}

func TestPlateListDecodesEmptyAndNull(t *testing.T) {
	assert.Empty(t, decodePlates(t, bson.M{"plates": ""}))
	assert.Empty(t, decodePlates(t, bson.M{"plates": nil}))
}

func TestPlateListRejectsMalformedLegacyValue(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"plates": `["ABC1D23"`})
	require.NoError(t, err)

	var out struct {
		Plates PlateList `bson:"plates"`
	}
	assert.Error(t, bson.Unmarshal(raw, &out))
}

func TestPlateListContains(t *testing.T) {
	plates := PlateList{"ABC1D23"}
	assert.True(t, plates.Contains("abc1d23"))
	assert.False(t, plates.Contains("ZZZ0Z00"))
}

func TestFreightComputeTotals(t *testing.T) {
	f := Freight{DistanceKM: 100, WeightTons: 10, DriverRate: 0.5, CarrierRate: 0.8}
	f.ComputeTotals()
	assert.InDelta(t, 500.0, f.DriverTotal, 0.001)
	assert.InDelta(t, 800.0, f.CarrierTotal, 0.001)
}

func TestReceiptKindValid(t *testing.T) {
	assert.True(t, ReceiptLoading.Valid())
	assert.True(t, ReceiptUnloading.Valid())
	assert.True(t, ReceiptReception.Valid())
	assert.False(t, ReceiptKind("selfie").Valid())
}
