package bill

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// French month abbreviations used in the short display format. Juin and
// juillet share the same 3-letter abbreviation.
var frenchMonths = [...]string{
	"Jan.", "Fév.", "Mar.", "Avr.", "Mai.", "Jui.",
	"Jui.", "Aoû.", "Sep.", "Oct.", "Nov.", "Déc.",
}

// dateLayouts are the accepted raw date shapes, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// UnknownStatusError reports a raw status code outside the known set.
type UnknownStatusError struct {
	Code string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown bill status %q", e.Code)
}

var statusLabels = map[string]string{
	StatusPending:  "En attente",
	StatusAccepted: "Accepté",
	StatusRefused:  "Refusé",
}

// ParseDate parses a raw stored date string.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable bill date %q", raw)
}

// FormatTime renders a date as the short French display form, e.g.
// "4 Avr. 04": day without leading zero, abbreviated month, 2-digit year.
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%d %s %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100)
}

// FormatDate parses raw and returns its display form. The raw value is
// returned untouched alongside the error when it does not parse; deciding
// what to do with an unparsable date is the caller's business.
func FormatDate(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return raw, err
	}
	return FormatTime(t), nil
}

// FormatStatus maps a raw status code to its display label. Unrecognized
// codes return an UnknownStatusError instead of a fabricated label.
func FormatStatus(raw string) (string, error) {
	label, ok := statusLabels[raw]
	if !ok {
		return "", &UnknownStatusError{Code: raw}
	}
	return label, nil
}

// SortByDateDesc orders bills newest first on the parsed date value.
// Rows whose date never parsed sort by their raw string, after any row
// with a real date.
func SortByDateDesc(bills []DisplayBill) {
	sort.SliceStable(bills, func(i, j int) bool {
		a, b := bills[i], bills[j]
		switch {
		case !a.DateValue.IsZero() && !b.DateValue.IsZero():
			return a.DateValue.After(b.DateValue)
		case a.DateValue.IsZero() && b.DateValue.IsZero():
			return a.Date > b.Date
		default:
			return !a.DateValue.IsZero()
		}
	})
}
