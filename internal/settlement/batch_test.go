package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDraftEmptySelection(t *testing.T) {
	_, err := BuildDraft(nil, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestBuildDraftNetTotal(t *testing.T) {
	selected := []LineItem{
		{Kind: KindFreight, ID: "FRT-1", Date: date(2026, 1, 12), Value: 600},
		{Kind: KindFreight, ID: "FRT-2", Date: date(2026, 1, 13), Value: 400},
		{Kind: KindFuel, ID: "ABS-1", Date: date(2026, 1, 12), Value: 200},
		{Kind: KindSupply, ID: "INS-1", Date: date(2026, 1, 13), Value: 50},
	}

	draft, err := BuildDraft(selected, selected)
	require.NoError(t, err)

	assert.InDelta(t, 750.0, draft.NetTotal, 0.001)
	assert.Equal(t, []string{"FRT-1", "FRT-2"}, draft.FreightIDs)
	assert.Equal(t, []string{"ABS-1"}, draft.FuelIDs)
	assert.Equal(t, []string{"INS-1"}, draft.SupplyIDs)
}

func TestPeriodLabelSingleDate(t *testing.T) {
	label := PeriodLabel(
		[]time.Time{date(2026, 1, 12)},
		[]time.Time{date(2026, 1, 12), date(2026, 2, 1)},
	)
	assert.Equal(t, "12/01/2026", label)
}

func TestPeriodLabelContiguousRange(t *testing.T) {
	// The selection covers every unpaid date inside its span, so the
	// label collapses to a range.
	selected := []time.Time{date(2026, 1, 12), date(2026, 1, 19)}
	allUnpaid := []time.Time{date(2026, 1, 12), date(2026, 1, 19), date(2026, 2, 3)}

	label := PeriodLabel(selected, allUnpaid)
	assert.Equal(t, "12/01/2026 - 19/01/2026", label)
}

func TestPeriodLabelWithUnselectedDateInSpan(t *testing.T) {
	// An unpaid freight dated 15/01 sits inside the span but was not
	// selected; the label must list the selected dates individually.
	selected := []time.Time{date(2026, 1, 12), date(2026, 1, 20)}
	allUnpaid := []time.Time{date(2026, 1, 12), date(2026, 1, 15), date(2026, 1, 20)}

	label := PeriodLabel(selected, allUnpaid)
	assert.Equal(t, "12/01/2026, 20/01/2026", label)
}

func TestPeriodLabelIgnoresUnpaidOutsideSpan(t *testing.T) {
	selected := []time.Time{date(2026, 1, 12), date(2026, 1, 19)}
	allUnpaid := []time.Time{
		date(2026, 1, 5), // before the span
		date(2026, 1, 12),
		date(2026, 1, 19),
		date(2026, 1, 25), // after the span
	}

	label := PeriodLabel(selected, allUnpaid)
	assert.Equal(t, "12/01/2026 - 19/01/2026", label)
}

func TestPeriodLabelDuplicateSelectedDays(t *testing.T) {
	// Two items on the same day count as one date in the label.
	selected := []time.Time{date(2026, 1, 12), date(2026, 1, 12)}
	label := PeriodLabel(selected, selected)
	assert.Equal(t, "12/01/2026", label)
}

func TestBuildDraftLabelUsesAllUnpaidItems(t *testing.T) {
	selected := []LineItem{
		{Kind: KindFreight, ID: "FRT-1", Date: date(2026, 1, 12), Value: 500},
		{Kind: KindFreight, ID: "FRT-3", Date: date(2026, 1, 20), Value: 500},
	}
	allUnpaid := append(selected, LineItem{
		Kind: KindFreight, ID: "FRT-2", Date: date(2026, 1, 15), Value: 200,
	})

	draft, err := BuildDraft(selected, allUnpaid)
	require.NoError(t, err)
	assert.Equal(t, "12/01/2026, 20/01/2026", draft.PeriodLabel)
}
