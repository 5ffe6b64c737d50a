package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ListInvoicesFilter narrows ListInvoices results. Nil fields are ignored.
type ListInvoicesFilter struct {
	CustomerID *string
	Status     *domain.InvoiceStatus
	Limit      int
	Offset     int
}

// InvoiceReader defines read operations for invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindLineItemsByInvoiceID retrieves an invoice's line items ordered by
	// line number.
	FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error)

	// ListInvoices retrieves invoice headers matching the filter, newest first.
	ListInvoices(ctx context.Context, filter ListInvoicesFilter) ([]domain.Invoice, error)

	// FindOverdueInvoices retrieves invoices whose due date has passed and
	// which still carry a balance, in sent or partial status.
	FindOverdueInvoices(ctx context.Context, asOf time.Time) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists an invoice header and its line items atomically.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus moves an invoice to a new status.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
