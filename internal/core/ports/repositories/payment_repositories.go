package repositories

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// PaymentReader defines read operations for customer payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindApplicationsByPaymentID retrieves the applications of a payment,
	// oldest first.
	FindApplicationsByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentApplication, error)

	// ListPayments retrieves payments, newest first.
	ListPayments(ctx context.Context, limit, offset int) ([]domain.Payment, error)

	// ListUnappliedPayments retrieves payments with a positive unapplied
	// amount, optionally restricted to one customer.
	ListUnappliedPayments(ctx context.Context, customerID *string) ([]domain.Payment, error)

	// FindPaymentsByInvoiceID retrieves every payment that has at least one
	// application against the invoice.
	FindPaymentsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// FindPaymentsByCustomerID retrieves all payments of one customer,
	// newest first.
	FindPaymentsByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for customer payments. Both methods
// run their full read-validate-write cycle inside one database transaction;
// invoice rows are locked before their balances change so concurrent
// applications serialize instead of double spending.
type PaymentWriter interface {
	// SavePayment persists a payment and zero or more initial applications
	// atomically, updating the balance and status of each applied invoice.
	SavePayment(ctx context.Context, payment domain.Payment, applications []domain.PaymentApplication) error

	// ApplyPayment applies an existing payment's unapplied funds to invoices.
	// The payment row is locked first; the unapplied check happens against
	// the locked row. Returns the payment as it stands after the application.
	ApplyPayment(ctx context.Context, paymentID string, applications []domain.PaymentApplication) (*domain.Payment, error)
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// BillPaymentReader defines read operations for vendor bill payments.
type BillPaymentReader interface {
	// FindBillPaymentByID retrieves a bill payment by its unique identifier.
	FindBillPaymentByID(ctx context.Context, billPaymentID string) (*domain.BillPayment, error)

	// FindApplicationsByBillPaymentID retrieves the applications of a bill
	// payment, oldest first.
	FindApplicationsByBillPaymentID(ctx context.Context, billPaymentID string) ([]domain.BillPaymentApplication, error)

	// ListBillPayments retrieves bill payments, newest first.
	ListBillPayments(ctx context.Context, limit, offset int) ([]domain.BillPayment, error)
}

// BillPaymentWriter defines write operations for vendor bill payments,
// mirroring PaymentWriter's atomicity guarantees on the payable side.
type BillPaymentWriter interface {
	// SaveBillPayment persists a bill payment and zero or more initial
	// applications atomically, updating each applied bill's balance and status.
	SaveBillPayment(ctx context.Context, payment domain.BillPayment, applications []domain.BillPaymentApplication) error
}

// BillPaymentRepositoryFacade combines all bill payment repository interfaces.
type BillPaymentRepositoryFacade interface {
	BillPaymentReader
	BillPaymentWriter
}
