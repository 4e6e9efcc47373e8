// server/internal/settlement/settlement.go

// Package settlement holds the reconciliation core of the freight system:
// unpaid-balance aggregation per driver, payment batching with the derived
// period label, and the per-client profit view. Everything here is pure
// computation over in-memory records; persistence stays in the handlers.
package settlement

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Kind tags a line item with its origin collection.
type Kind string

const (
	KindFreight Kind = "freight"
	KindFuel    Kind = "fuel"
	KindSupply  Kind = "supply"
)

// LineItem is the minimal view of a freight, fuel purchase or supply that
// the batcher needs: identity, date and derived value.
type LineItem struct {
	Kind  Kind
	ID    string
	Date  time.Time
	Value float64
}

// DateBR is the display layout used across the portals (pt-BR).
const DateBR = "02/01/2006"

// day truncates a timestamp to its calendar day; all date comparisons in
// this package are day-granular.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatBRL renders a monetary value for display. A zero balance renders
// as "-" instead of a currency string.
func FormatBRL(v float64) string {
	neg := v < 0
	cents := int64(math.Round(math.Abs(v) * 100))
	if cents == 0 {
		return "-"
	}
	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), frac)
	if neg {
		out = "-" + out
	}
	return out
}

// uniqueSortedDays reduces a set of timestamps to unique calendar days in
// ascending order.
func uniqueSortedDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	var days []time.Time
	for _, d := range dates {
		dd := day(d)
		if _, ok := seen[dd]; ok {
			continue
		}
		seen[dd] = struct{}{}
		days = append(days, dd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
