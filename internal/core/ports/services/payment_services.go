package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// PaymentReaderSvc defines read operations for customer payments.
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment with its applications.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, []domain.PaymentApplication, error)

	// ListPayments retrieves payments, newest first.
	ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error)

	// ListUnappliedPayments retrieves payments with unapplied funds,
	// optionally restricted to one customer.
	ListUnappliedPayments(ctx context.Context, customerID *string) ([]domain.Payment, error)

	// GetInvoicePayments retrieves every payment applied against an invoice.
	GetInvoicePayments(ctx context.Context, invoiceID string) ([]domain.Payment, error)

	// ListCustomerPayments retrieves all payments of one customer, newest first.
	ListCustomerPayments(ctx context.Context, customerID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines write operations for customer payments.
type PaymentWriterSvc interface {
	// CreatePayment validates and persists a new payment, applying any
	// initial applications atomically.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*domain.Payment, error)

	// ApplyPayment applies an existing payment's unapplied funds to invoices.
	ApplyPayment(ctx context.Context, paymentID string, req dto.ApplyPaymentRequest) (*domain.Payment, error)
}

// BillPaymentSvc defines operations for vendor bill payments.
type BillPaymentSvc interface {
	// CreateBillPayment validates and persists a new bill payment, applying
	// any initial applications atomically.
	CreateBillPayment(ctx context.Context, req dto.CreateBillPaymentRequest) (*domain.BillPayment, error)

	// GetBillPaymentByID retrieves a bill payment with its applications.
	GetBillPaymentByID(ctx context.Context, billPaymentID string) (*domain.BillPayment, []domain.BillPaymentApplication, error)

	// ListBillPayments retrieves bill payments, newest first.
	ListBillPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.BillPayment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces.
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
	BillPaymentSvc
}
