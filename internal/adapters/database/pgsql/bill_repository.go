package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

const billColumns = `bill_id, bill_number, vendor_id, bill_date, due_date, total_amount, balance, status, memo, created_at, updated_at`

const billLineColumns = `line_item_id, bill_id, line_number, description, amount, expense_account_id, billable, customer_id, created_at, updated_at`

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for vendor bills.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryFacade {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepositoryFacade = (*PgxBillRepository)(nil)

func scanBill(row pgx.Row) (domain.Bill, error) {
	var bill domain.Bill
	err := row.Scan(
		&bill.BillID,
		&bill.BillNumber,
		&bill.VendorID,
		&bill.BillDate,
		&bill.DueDate,
		&bill.TotalAmount,
		&bill.Balance,
		&bill.Status,
		&bill.Memo,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	return bill, err
}

func scanBillLine(row pgx.Row) (domain.BillLineItem, error) {
	var li domain.BillLineItem
	err := row.Scan(
		&li.LineItemID,
		&li.BillID,
		&li.LineNumber,
		&li.Description,
		&li.Amount,
		&li.ExpenseAccountID,
		&li.Billable,
		&li.CustomerID,
		&li.CreatedAt,
		&li.UpdatedAt,
	)
	return li, err
}

// SaveBill saves a bill header and its line items within a DB transaction.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	headerQuery := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		bill.BillID,
		bill.BillNumber,
		bill.VendorID,
		bill.BillDate,
		bill.DueDate,
		bill.TotalAmount,
		bill.Balance,
		bill.Status,
		bill.Memo,
		bill.CreatedAt,
		bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill %s: %w", bill.BillID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO bill_line_items (` + billLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, li := range bill.LineItems {
		batch.Queue(lineQuery,
			li.LineItemID,
			li.BillID,
			li.LineNumber,
			li.Description,
			li.Amount,
			li.ExpenseAccountID,
			li.Billable,
			li.CustomerID,
			li.CreatedAt,
			li.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line item batch for bill %s: %w", bill.BillID, err)
	}

	return r.Commit(ctx, tx)
}

// FindBillByID retrieves a bill header by its ID.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1;`
	bill, err := scanBill(r.Pool.QueryRow(ctx, query, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill %s: %w", billID, err)
	}
	return &bill, nil
}

// FindLineItemsByBillID retrieves a bill's line items ordered by line number.
func (r *PgxBillRepository) FindLineItemsByBillID(ctx context.Context, billID string) ([]domain.BillLineItem, error) {
	query := `
		SELECT ` + billLineColumns + `
		FROM bill_line_items
		WHERE bill_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for bill %s: %w", billID, err)
	}
	defer rows.Close()

	items := []domain.BillLineItem{}
	for rows.Next() {
		li, err := scanBillLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill line row: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill line rows: %w", err)
	}
	return items, nil
}

// ListBills retrieves bill headers matching the filter, newest first.
func (r *PgxBillRepository) ListBills(ctx context.Context, filter portsrepo.ListBillsFilter) ([]domain.Bill, error) {
	var conds []string
	var args []any

	if filter.VendorID != nil {
		args = append(args, *filter.VendorID)
		conds = append(conds, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + billColumns + ` FROM bills`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY bill_date DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// FindOverdueBills retrieves bills past their due date that still carry a balance.
func (r *PgxBillRepository) FindOverdueBills(ctx context.Context, asOf time.Time) ([]domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE status IN ('OPEN', 'PARTIAL')
		  AND due_date < $1
		ORDER BY due_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue bills: %w", err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill row: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// CountBillApplications returns how many bill payment applications reference the bill.
func (r *PgxBillRepository) CountBillApplications(ctx context.Context, billID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM bill_payment_applications WHERE bill_id = $1;`
	if err := r.Pool.QueryRow(ctx, query, billID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications for bill %s: %w", billID, err)
	}
	return count, nil
}

// UpdateBillStatus moves a bill to a new status.
func (r *PgxBillRepository) UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, updatedAt time.Time) error {
	query := `UPDATE bills SET status = $1, updated_at = $2 WHERE bill_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, status, updatedAt, billID)
	if err != nil {
		return fmt.Errorf("failed to update status of bill %s: %w", billID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBill removes a bill and its line items atomically.
func (r *PgxBillRepository) DeleteBill(ctx context.Context, billID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM bill_line_items WHERE bill_id = $1;`, billID); err != nil {
		return fmt.Errorf("failed to delete line items of bill %s: %w", billID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM bills WHERE bill_id = $1;`, billID)
	if err != nil {
		return fmt.Errorf("failed to delete bill %s: %w", billID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
