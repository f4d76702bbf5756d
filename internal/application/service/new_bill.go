package service

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/application/port"
	"github.com/Aurelio-One/p9/internal/domain/bill"
	"github.com/Aurelio-One/p9/internal/domain/submission"
)

// WarnUnsupportedFileFormat is the exact user-facing message raised when a
// receipt file has a disallowed extension.
const WarnUnsupportedFileFormat = "Erreur : seuls les fichiers JPG, JPEG et PNG sont autorisés"

// ErrUnsupportedFileFormat is returned by StageFile when the receipt
// extension is not in the allow-list.
var ErrUnsupportedFileFormat = errors.New("unsupported receipt file format")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// FormFields carries the raw form input of a new bill. Numeric fields stay
// strings so empty input propagates as empty, not as a parse error.
type FormFields struct {
	Type       string
	Name       string
	Date       string
	Amount     string
	VAT        string
	Pct        string
	Commentary string
}

// NewBillFlow drives one new-bill session through its two phases: stage a
// receipt file, then submit the assembled bill. Each instance owns its
// draft exclusively and is discarded after submission. Overlapping uploads
// are not guarded against: a second StageFile issued before the first
// settles proceeds in parallel and the later resolution wins.
type NewBillFlow struct {
	store      port.RemoteBillStore
	navigator  port.Navigator
	alerter    port.Alerter
	machine    *submission.Machine
	logger     *zap.Logger
	ownerEmail string
	draft      bill.Draft
}

// NewNewBillFlow creates a flow for one submission session.
func NewNewBillFlow(
	store port.RemoteBillStore,
	navigator port.Navigator,
	alerter port.Alerter,
	ownerEmail string,
	logger *zap.Logger,
) *NewBillFlow {
	return &NewBillFlow{
		store:      store,
		navigator:  navigator,
		alerter:    alerter,
		machine:    submission.NewMachine(),
		logger:     logger,
		ownerEmail: ownerEmail,
	}
}

// State returns the current lifecycle state of the session.
func (f *NewBillFlow) State() submission.State {
	return f.machine.State()
}

// Draft returns a copy of the session's draft.
func (f *NewBillFlow) Draft() bill.Draft {
	return f.draft
}

// StageFile validates and uploads a receipt file before the rest of the
// bill is known. A disallowed extension raises the user warning and leaves
// the flow untouched without contacting the store. An upload failure is
// logged and the flow stays in AwaitingFile so the user can retry.
func (f *NewBillFlow) StageFile(ctx context.Context, file port.File) error {
	ext := strings.ToLower(filepath.Ext(file.Name))
	if !allowedExtensions[ext] {
		f.alerter.Alert(WarnUnsupportedFileFormat)
		return ErrUnsupportedFileFormat
	}

	ref, err := f.store.CreateFile(ctx, file, f.ownerEmail)
	if err != nil {
		f.logger.Error("receipt upload failed",
			zap.String("file_name", file.Name),
			zap.Error(err))
		return err
	}

	if err := f.machine.Fire(submission.TriggerStageFile); err != nil {
		f.logger.Error("staging rejected", zap.Error(err))
		return err
	}

	f.draft.BillID = ref.Key
	f.draft.FileURL = ref.FileURL
	f.draft.FileName = file.Name

	f.logger.Debug("receipt staged",
		zap.String("bill_id", f.draft.BillID),
		zap.String("file_name", f.draft.FileName))
	return nil
}

// Submit assembles the final bill from the form fields and the staged
// receipt and persists it with status "pending". Persistence is best
// effort: a store failure is logged and the user is still navigated to the
// bill list. Submitting without a staged receipt is a caller error but must
// not crash; the payload simply carries empty file references.
func (f *NewBillFlow) Submit(ctx context.Context, fields FormFields) {
	payload := f.assemble(fields)

	if _, err := f.store.Update(ctx, payload); err != nil {
		f.logger.Error("bill update failed",
			zap.String("bill_id", payload.ID),
			zap.Error(err))
	}

	if err := f.machine.Fire(submission.TriggerSubmit); err != nil {
		f.logger.Warn("submit transition rejected", zap.Error(err))
	}

	f.navigator.NavigateTo(bill.RouteBills)
}

func (f *NewBillFlow) assemble(fields FormFields) bill.Bill {
	amount, _ := strconv.ParseFloat(fields.Amount, 64)
	pct, _ := strconv.Atoi(fields.Pct)
	if pct == 0 {
		pct = 20
	}

	return bill.Bill{
		ID:         f.draft.BillID,
		Email:      f.ownerEmail,
		Type:       fields.Type,
		Name:       fields.Name,
		Date:       fields.Date,
		Amount:     amount,
		VAT:        fields.VAT,
		Pct:        pct,
		Commentary: fields.Commentary,
		Status:     bill.StatusPending,
		FileURL:    f.draft.FileURL,
		FileName:   f.draft.FileName,
	}
}
