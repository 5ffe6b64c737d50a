package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

const billPaymentColumns = `bill_payment_id, payment_number, vendor_id, payment_date, amount, unapplied_amount, payment_method, reference_number, memo, created_at, updated_at`

const billApplicationColumns = `application_id, bill_payment_id, bill_id, amount_applied, created_at`

// billApplyQuery mirrors invoiceApplyQuery on the payable side.
const billApplyQuery = `
	UPDATE bills
	SET balance = balance - $1,
	    status = CASE
	        WHEN balance - $1 <= 0 THEN 'PAID'
	        WHEN balance - $1 < total_amount THEN 'PARTIAL'
	        ELSE status
	    END,
	    updated_at = $2
	WHERE bill_id = $3;
`

type PgxBillPaymentRepository struct {
	BaseRepository
}

// newPgxBillPaymentRepository creates a new repository for vendor bill payments.
func newPgxBillPaymentRepository(pool *pgxpool.Pool) portsrepo.BillPaymentRepositoryFacade {
	return &PgxBillPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillPaymentRepositoryFacade = (*PgxBillPaymentRepository)(nil)

func scanBillPayment(row pgx.Row) (domain.BillPayment, error) {
	var p domain.BillPayment
	err := row.Scan(
		&p.BillPaymentID,
		&p.PaymentNumber,
		&p.VendorID,
		&p.PaymentDate,
		&p.Amount,
		&p.UnappliedAmount,
		&p.PaymentMethod,
		&p.ReferenceNumber,
		&p.Memo,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// SaveBillPayment persists a bill payment and its initial applications atomically.
func (r *PgxBillPaymentRepository) SaveBillPayment(ctx context.Context, payment domain.BillPayment, applications []domain.BillPaymentApplication) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	query := `
		INSERT INTO bill_payments (` + billPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		payment.BillPaymentID,
		payment.PaymentNumber,
		payment.VendorID,
		payment.PaymentDate,
		payment.Amount,
		payment.UnappliedAmount,
		payment.PaymentMethod,
		payment.ReferenceNumber,
		payment.Memo,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill payment %s: %w", payment.BillPaymentID, err)
	}

	for _, app := range applications {
		var billExists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM bills WHERE bill_id = $1 AND vendor_id = $2);`,
			app.BillID, payment.VendorID,
		).Scan(&billExists)
		if err != nil {
			return fmt.Errorf("failed to check bill %s: %w", app.BillID, err)
		}
		if !billExists {
			return fmt.Errorf("%w: bill %s does not exist or does not belong to vendor", apperrors.ErrValidation, app.BillID)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO bill_payment_applications (`+billApplicationColumns+`) VALUES ($1, $2, $3, $4, $5);`,
			app.ApplicationID, app.BillPaymentID, app.BillID, app.AmountApplied, app.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert application for bill %s: %w", app.BillID, err)
		}

		if _, err := tx.Exec(ctx, billApplyQuery, app.AmountApplied, payment.CreatedAt, app.BillID); err != nil {
			return fmt.Errorf("failed to apply amount to bill %s: %w", app.BillID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// FindBillPaymentByID retrieves a bill payment by its ID.
func (r *PgxBillPaymentRepository) FindBillPaymentByID(ctx context.Context, billPaymentID string) (*domain.BillPayment, error) {
	query := `SELECT ` + billPaymentColumns + ` FROM bill_payments WHERE bill_payment_id = $1;`
	p, err := scanBillPayment(r.Pool.QueryRow(ctx, query, billPaymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill payment %s: %w", billPaymentID, err)
	}
	return &p, nil
}

// FindApplicationsByBillPaymentID retrieves the applications of a bill payment, oldest first.
func (r *PgxBillPaymentRepository) FindApplicationsByBillPaymentID(ctx context.Context, billPaymentID string) ([]domain.BillPaymentApplication, error) {
	query := `
		SELECT ` + billApplicationColumns + `
		FROM bill_payment_applications
		WHERE bill_payment_id = $1
		ORDER BY created_at, application_id;
	`
	rows, err := r.Pool.Query(ctx, query, billPaymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for bill payment %s: %w", billPaymentID, err)
	}
	defer rows.Close()

	apps := []domain.BillPaymentApplication{}
	for rows.Next() {
		var app domain.BillPaymentApplication
		if err := rows.Scan(&app.ApplicationID, &app.BillPaymentID, &app.BillID, &app.AmountApplied, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// ListBillPayments retrieves bill payments, newest first.
func (r *PgxBillPaymentRepository) ListBillPayments(ctx context.Context, limit, offset int) ([]domain.BillPayment, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + billPaymentColumns + `
		FROM bill_payments
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.BillPayment{}
	for rows.Next() {
		p, err := scanBillPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill payment rows: %w", err)
	}
	return payments, nil
}
