package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// InvoiceReaderSvc defines read operations for customer invoices.
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its line items.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices matching the filter params, newest first.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)

	// GetCustomerInvoices retrieves all invoices of one customer, newest first.
	GetCustomerInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error)

	// GetOverdueInvoices retrieves invoices past their due date that still
	// carry a balance.
	GetOverdueInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for customer invoices.
type InvoiceWriterSvc interface {
	// CreateInvoice validates and persists a new invoice in draft status.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	// UpdateInvoiceStatus moves an invoice through its status lifecycle,
	// rejecting illegal transitions.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
