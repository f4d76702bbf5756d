// Package repository implements server-side persistence for bills.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/domain/bill"
)

// ErrBillNotFound is returned when a bill key matches no record.
var ErrBillNotFound = errors.New("bill not found")

// BillRepository handles bill database operations
type BillRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *sql.DB, logger *zap.Logger) *BillRepository {
	return &BillRepository{
		db:     db,
		logger: logger,
	}
}

const billColumns = `id, email, type, name, date, amount, vat, pct, commentary, status, file_url, file_name`

// List returns all bills in insertion order.
func (r *BillRepository) List(ctx context.Context) ([]bill.Bill, error) {
	query := fmt.Sprintf(`SELECT %s FROM bills ORDER BY rowid`, billColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list bills", zap.Error(err))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []bill.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// CreateStaged inserts the skeleton record created by a receipt upload.
// Only the key, owner email and file references are known at this point.
func (r *BillRepository) CreateStaged(ctx context.Context, key, email, fileURL, fileName string) error {
	query := `
		INSERT INTO bills (id, email, status, file_url, file_name)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, key, email, bill.StatusPending, fileURL, fileName); err != nil {
		r.logger.Error("Failed to create staged bill",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("failed to create staged bill: %w", err)
	}
	return nil
}

// Update fills in the remaining fields of a staged bill and returns the
// stored record.
func (r *BillRepository) Update(ctx context.Context, b bill.Bill) (bill.Bill, error) {
	query := `
		UPDATE bills
		SET email = ?, type = ?, name = ?, date = ?, amount = ?, vat = ?,
		    pct = ?, commentary = ?, status = ?, file_url = ?, file_name = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		b.Email, b.Type, b.Name, b.Date, b.Amount, b.VAT,
		b.Pct, b.Commentary, b.Status, b.FileURL, b.FileName, b.ID)
	if err != nil {
		r.logger.Error("Failed to update bill",
			zap.String("bill_id", b.ID),
			zap.Error(err))
		return bill.Bill{}, fmt.Errorf("failed to update bill: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return bill.Bill{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return bill.Bill{}, ErrBillNotFound
	}

	return r.GetByID(ctx, b.ID)
}

// GetByID retrieves a single bill by its key.
func (r *BillRepository) GetByID(ctx context.Context, id string) (bill.Bill, error) {
	query := fmt.Sprintf(`SELECT %s FROM bills WHERE id = ?`, billColumns)

	b, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return bill.Bill{}, ErrBillNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get bill",
			zap.String("bill_id", id),
			zap.Error(err))
		return bill.Bill{}, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (bill.Bill, error) {
	var b bill.Bill
	err := row.Scan(
		&b.ID, &b.Email, &b.Type, &b.Name, &b.Date, &b.Amount,
		&b.VAT, &b.Pct, &b.Commentary, &b.Status, &b.FileURL, &b.FileName,
	)
	return b, err
}
