package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const paymentColumns = `payment_id, payment_number, customer_id, payment_date, amount, unapplied_amount, payment_method, reference_number, memo, created_at, updated_at`

const applicationColumns = `application_id, payment_id, invoice_id, amount_applied, created_at`

// invoiceApplyQuery decrements an invoice's balance and recomputes its status
// in a single statement so the balance read and write cannot interleave with
// a concurrent application.
const invoiceApplyQuery = `
	UPDATE invoices
	SET balance = balance - $1,
	    status = CASE
	        WHEN balance - $1 <= 0 THEN 'PAID'
	        WHEN balance - $1 < total_amount THEN 'PARTIAL'
	        ELSE status
	    END,
	    updated_at = $2
	WHERE invoice_id = $3;
`

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for customer payments.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.PaymentNumber,
		&p.CustomerID,
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

// applyToInvoice verifies the invoice belongs to the customer, records the
// application row and adjusts the invoice inside the caller's transaction.
func applyToInvoice(ctx context.Context, tx pgx.Tx, customerID string, app domain.PaymentApplication, now time.Time) error {
	var invoiceExists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM invoices WHERE invoice_id = $1 AND customer_id = $2);`,
		app.InvoiceID, customerID,
	).Scan(&invoiceExists)
	if err != nil {
		return fmt.Errorf("failed to check invoice %s: %w", app.InvoiceID, err)
	}
	if !invoiceExists {
		return fmt.Errorf("%w: invoice %s does not exist or does not belong to customer", apperrors.ErrValidation, app.InvoiceID)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO payment_applications (`+applicationColumns+`) VALUES ($1, $2, $3, $4, $5);`,
		app.ApplicationID, app.PaymentID, app.InvoiceID, app.AmountApplied, app.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application for invoice %s: %w", app.InvoiceID, err)
	}

	if _, err := tx.Exec(ctx, invoiceApplyQuery, app.AmountApplied, now, app.InvoiceID); err != nil {
		return fmt.Errorf("failed to apply amount to invoice %s: %w", app.InvoiceID, err)
	}
	return nil
}

// SavePayment persists a payment and its initial applications atomically.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		payment.PaymentID,
		payment.PaymentNumber,
		payment.CustomerID,
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
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	for _, app := range applications {
		if err := applyToInvoice(ctx, tx, payment.CustomerID, app, payment.CreatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ApplyPayment applies an existing payment's unapplied funds to invoices.
// The payment row is locked for the duration of the transaction; the
// unapplied check runs against the locked row so concurrent applications of
// the same payment serialize.
func (r *PgxPaymentRepository) ApplyPayment(ctx context.Context, paymentID string, applications []domain.PaymentApplication) (*domain.Payment, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	lockQuery := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1 FOR UPDATE;`
	payment, err := scanPayment(tx.QueryRow(ctx, lockQuery, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock payment %s: %w", paymentID, err)
	}

	total := decimal.Zero
	for _, app := range applications {
		total = total.Add(app.AmountApplied)
	}
	if total.GreaterThan(payment.UnappliedAmount) {
		return nil, fmt.Errorf("%w: total application amount cannot exceed unapplied amount", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	for _, app := range applications {
		if err := applyToInvoice(ctx, tx, payment.CustomerID, app, now); err != nil {
			return nil, err
		}
	}

	newUnapplied := payment.UnappliedAmount.Sub(total)
	_, err = tx.Exec(ctx,
		`UPDATE payments SET unapplied_amount = $1, updated_at = $2 WHERE payment_id = $3;`,
		newUnapplied, now, paymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update unapplied amount of payment %s: %w", paymentID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	payment.UnappliedAmount = newUnapplied
	payment.UpdatedAt = now
	return &payment, nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	p, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return &p, nil
}

// FindApplicationsByPaymentID retrieves the applications of a payment, oldest first.
func (r *PgxPaymentRepository) FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM payment_applications
		WHERE payment_id = $1
		ORDER BY created_at, application_id;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications for payment %s: %w", paymentID, err)
	}
	defer rows.Close()

	apps := []domain.PaymentApplication{}
	for rows.Next() {
		var app domain.PaymentApplication
		if err := rows.Scan(&app.ApplicationID, &app.PaymentID, &app.InvoiceID, &app.AmountApplied, &app.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

func (r *PgxPaymentRepository) queryPayments(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return payments, nil
}

// ListPayments retrieves payments, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, limit, offset int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		ORDER BY payment_date DESC, created_at DESC
		LIMIT $1 OFFSET $2;
	`
	return r.queryPayments(ctx, query, limit, offset)
}

// ListUnappliedPayments retrieves payments with a positive unapplied amount,
// oldest first so they get applied in receipt order.
func (r *PgxPaymentRepository) ListUnappliedPayments(ctx context.Context, customerID *string) ([]domain.Payment, error) {
	if customerID != nil {
		query := `
			SELECT ` + paymentColumns + `
			FROM payments
			WHERE unapplied_amount > 0 AND customer_id = $1
			ORDER BY payment_date ASC;
		`
		return r.queryPayments(ctx, query, *customerID)
	}
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE unapplied_amount > 0
		ORDER BY payment_date ASC;
	`
	return r.queryPayments(ctx, query)
}

// FindPaymentsByInvoiceID retrieves every payment applied against the invoice.
func (r *PgxPaymentRepository) FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	query := `
		SELECT DISTINCT p.payment_id, p.payment_number, p.customer_id, p.payment_date, p.amount, p.unapplied_amount, p.payment_method, p.reference_number, p.memo, p.created_at, p.updated_at
		FROM payments p
		INNER JOIN payment_applications pa ON p.payment_id = pa.payment_id
		WHERE pa.invoice_id = $1
		ORDER BY p.payment_date DESC, p.created_at DESC;
	`
	return r.queryPayments(ctx, query, invoiceID)
}

// FindPaymentsByCustomerID retrieves all payments of one customer, newest first.
func (r *PgxPaymentRepository) FindPaymentsByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE customer_id = $1
		ORDER BY payment_date DESC, created_at DESC;
	`
	return r.queryPayments(ctx, query, customerID)
}
