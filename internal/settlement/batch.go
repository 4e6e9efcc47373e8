// server/internal/settlement/batch.go
package settlement

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptySelection is returned when a payment batch is requested with no
// line items selected. Nothing is persisted in that case.
var ErrEmptySelection = errors.New("nenhum item selecionado para pagamento")

// Draft is the prepared payment payload: the net amount, the derived
// period label and the ids of the items the payment will settle.
// Persisting it (and flipping the paid flags) is the handler's job.
type Draft struct {
	NetTotal    float64
	PeriodLabel string
	FreightIDs  []string
	FuelIDs     []string
	SupplyIDs   []string
}

// BuildDraft turns the operator's selection into a payment draft.
// allUnpaid must be the driver's complete set of currently-unpaid line
// items (selected or not); it decides whether the label can collapse to a
// date range.
func BuildDraft(selected []LineItem, allUnpaid []LineItem) (Draft, error) {
	if len(selected) == 0 {
		return Draft{}, ErrEmptySelection
	}

	var draft Draft
	var selectedDates []time.Time
	for _, item := range selected {
		selectedDates = append(selectedDates, item.Date)
		switch item.Kind {
		case KindFreight:
			draft.NetTotal += item.Value
			draft.FreightIDs = append(draft.FreightIDs, item.ID)
		case KindFuel:
			draft.NetTotal -= item.Value
			draft.FuelIDs = append(draft.FuelIDs, item.ID)
		case KindSupply:
			draft.NetTotal -= item.Value
			draft.SupplyIDs = append(draft.SupplyIDs, item.ID)
		}
	}

	var unpaidDates []time.Time
	for _, item := range allUnpaid {
		unpaidDates = append(unpaidDates, item.Date)
	}
	draft.PeriodLabel = PeriodLabel(selectedDates, unpaidDates)

	return draft, nil
}

// PeriodLabel derives the display label for a payment batch.
//
// The selection collapses to "first - last" only when it covers every
// unpaid date inside its own span; a selection with holes lists each
// selected date so the label never implies items that were left out.
func PeriodLabel(selectedDates, allUnpaidDates []time.Time) string {
	selected := uniqueSortedDays(selectedDates)
	if len(selected) == 0 {
		return ""
	}
	if len(selected) == 1 {
		return selected[0].Format(DateBR)
	}

	first, last := selected[0], selected[len(selected)-1]

	selectedSet := make(map[time.Time]struct{}, len(selected))
	for _, d := range selected {
		selectedSet[d] = struct{}{}
	}

	contiguous := true
	for _, d := range uniqueSortedDays(allUnpaidDates) {
		if d.Before(first) || d.After(last) {
			continue
		}
		if _, ok := selectedSet[d]; !ok {
			contiguous = false
			break
		}
	}

	if contiguous {
		return first.Format(DateBR) + " - " + last.Format(DateBR)
	}

	parts := make([]string, len(selected))
	for i, d := range selected {
		parts[i] = d.Format(DateBR)
	}
	return strings.Join(parts, ", ")
}
