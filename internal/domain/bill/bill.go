// Package bill holds the expense bill domain model shared by the
// submission flow, the list service and the store implementations.
package bill

import "time"

// Raw status codes as persisted by the store.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRefused  = "refused"
)

// Route identifies a navigation target handed to the view layer.
type Route string

const (
	RouteBills   Route = "#employee/bills"
	RouteNewBill Route = "#employee/bill/new"
)

// Bill is an expense bill as delivered by the store. Date is a raw string
// that is not guaranteed to be well-formed; Status carries the raw code.
type Bill struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	VAT        string  `json:"vat"`
	Pct        int     `json:"pct"`
	Commentary string  `json:"commentary"`
	Status     string  `json:"status"`
	FileURL    string  `json:"fileUrl"`
	FileName   string  `json:"fileName"`
}

// DisplayBill is a Bill whose Date and Status have been replaced by their
// display representations. When the raw date did not parse, Date keeps the
// raw value and DateValue stays zero. DateValue is what list consumers sort
// on; sorting the display string would misorder under non-ISO formatting.
type DisplayBill struct {
	Bill
	DateValue time.Time
}

// Draft is the transient state of a bill being assembled client-side.
// BillID, FileURL and FileName stay empty until a receipt upload succeeds.
type Draft struct {
	BillID   string
	FileURL  string
	FileName string
}

// Staged reports whether a receipt upload has populated the draft.
func (d Draft) Staged() bool {
	return d.BillID != "" && d.FileURL != ""
}
