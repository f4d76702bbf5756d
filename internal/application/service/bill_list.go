// Package service contains the application services driving the bill list
// and the new-bill submission flow.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/application/port"
	"github.com/Aurelio-One/p9/internal/domain/bill"
)

// BillListService fetches bills from the store and prepares them for
// display. Formatting failures degrade the affected field only; a row is
// never dropped because its date or status is malformed.
type BillListService struct {
	store     port.RemoteBillStore
	navigator port.Navigator
	previewer port.ImagePreviewer
	logger    *zap.Logger
}

// NewBillListService creates a new BillListService.
func NewBillListService(
	store port.RemoteBillStore,
	navigator port.Navigator,
	previewer port.ImagePreviewer,
	logger *zap.Logger,
) *BillListService {
	return &BillListService{
		store:     store,
		navigator: navigator,
		previewer: previewer,
		logger:    logger,
	}
}

// GetBills returns the store's bills with display formatting applied, in
// the order the store returned them. A store failure is propagated verbatim
// so the view can surface the message. A date that does not parse keeps its
// raw value; the status is formatted independently of the date outcome, and
// an unrecognized status code likewise keeps the raw code. Both
// degradations are logged.
func (s *BillListService) GetBills(ctx context.Context) ([]bill.DisplayBill, error) {
	raw, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	bills := make([]bill.DisplayBill, 0, len(raw))
	for _, b := range raw {
		d := bill.DisplayBill{Bill: b}

		if parsed, err := bill.ParseDate(b.Date); err != nil {
			s.logger.Warn("bill date left unformatted",
				zap.String("bill_id", b.ID),
				zap.String("date", b.Date),
				zap.Error(err))
		} else {
			d.Date = bill.FormatTime(parsed)
			d.DateValue = parsed
		}

		if label, err := bill.FormatStatus(b.Status); err != nil {
			s.logger.Warn("bill status left unformatted",
				zap.String("bill_id", b.ID),
				zap.String("status", b.Status),
				zap.Error(err))
		} else {
			d.Status = label
		}

		bills = append(bills, d)
	}

	return bills, nil
}

// OpenNewBill navigates to the new-bill form.
func (s *BillListService) OpenNewBill() {
	s.navigator.NavigateTo(bill.RouteNewBill)
}

// ShowReceipt opens the receipt preview for the given file URL.
func (s *BillListService) ShowReceipt(fileURL string) {
	s.previewer.ShowImagePreview(fileURL)
}
