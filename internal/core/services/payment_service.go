package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/core/ports"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
	"github.com/shopspring/decimal"
)

type paymentService struct {
	paymentRepo     portsrepo.PaymentRepositoryFacade
	billPaymentRepo portsrepo.BillPaymentRepositoryFacade
	contactRepo     portsrepo.ContactReader
	cache           ports.Cache
}

// NewPaymentService creates the payment service covering both the receivable
// and payable sides.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	billPaymentRepo portsrepo.BillPaymentRepositoryFacade,
	contactRepo portsrepo.ContactReader,
	cache ports.Cache,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:     paymentRepo,
		billPaymentRepo: billPaymentRepo,
		contactRepo:     contactRepo,
		cache:           cache,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// CreatePayment records a customer payment. Initial applications may
// distribute part or all of the amount to invoices; the remainder stays
// unapplied.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date: %s", apperrors.ErrValidation, req.PaymentDate)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	exists, err := s.contactRepo.ContactExists(ctx, req.CustomerID, domain.ContactCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
	}

	applied := decimal.Zero
	for i, app := range req.Applications {
		if !app.AmountApplied.IsPositive() {
			return nil, fmt.Errorf("%w: application %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		applied = applied.Add(app.AmountApplied)
	}
	if applied.GreaterThan(req.Amount) {
		return nil, fmt.Errorf("%w: applied total %s exceeds payment amount %s", apperrors.ErrValidation, applied, req.Amount)
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		PaymentNumber:   req.PaymentNumber,
		CustomerID:      req.CustomerID,
		PaymentDate:     paymentDate,
		Amount:          req.Amount,
		UnappliedAmount: req.Amount.Sub(applied),
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Memo:            req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	applications := make([]domain.PaymentApplication, len(req.Applications))
	for i, app := range req.Applications {
		applications[i] = domain.PaymentApplication{
			ApplicationID: uuid.NewString(),
			PaymentID:     payment.PaymentID,
			InvoiceID:     app.InvoiceID,
			AmountApplied: app.AmountApplied,
			CreatedAt:     now,
		}
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, applications); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()))
		return nil, err
	}
	s.invalidateInvoices(ctx, payment.CustomerID, applications)

	logger.Info("Payment created",
		slog.String("payment_id", payment.PaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("unapplied", payment.UnappliedAmount.String()),
	)
	return &payment, nil
}

// ApplyPayment applies an existing payment's unapplied funds to invoices.
// The unapplied check runs in the repository against the locked payment row.
func (s *paymentService) ApplyPayment(ctx context.Context, paymentID string, req dto.ApplyPaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	applications := make([]domain.PaymentApplication, len(req.Applications))
	for i, app := range req.Applications {
		if !app.AmountApplied.IsPositive() {
			return nil, fmt.Errorf("%w: application %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		applications[i] = domain.PaymentApplication{
			ApplicationID: uuid.NewString(),
			PaymentID:     paymentID,
			InvoiceID:     app.InvoiceID,
			AmountApplied: app.AmountApplied,
			CreatedAt:     now,
		}
	}

	payment, err := s.paymentRepo.ApplyPayment(ctx, paymentID, applications)
	if err != nil {
		logger.Error("Failed to apply payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, err
	}
	s.invalidateInvoices(ctx, payment.CustomerID, applications)

	logger.Info("Payment applied",
		slog.String("payment_id", paymentID),
		slog.Int("applications", len(applications)),
		slog.String("unapplied", payment.UnappliedAmount.String()),
	)
	return payment, nil
}

// GetPaymentByID retrieves a payment and its applications.
func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, []domain.PaymentApplication, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, nil, err
	}
	apps, err := s.paymentRepo.FindApplicationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payment applications: %w", err)
	}
	return payment, apps, nil
}

// ListPayments retrieves payments, newest first.
func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPayments(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// ListUnappliedPayments retrieves payments with funds left to apply, oldest
// payment date first so the oldest cash is applied first.
func (s *paymentService) ListUnappliedPayments(ctx context.Context, customerID *string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListUnappliedPayments(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unapplied payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// GetInvoicePayments retrieves every payment applied against an invoice.
func (s *paymentService) GetInvoicePayments(ctx context.Context, invoiceID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindPaymentsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// ListCustomerPayments retrieves all payments of one customer.
func (s *paymentService) ListCustomerPayments(ctx context.Context, customerID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindPaymentsByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// CreateBillPayment records a vendor payment, mirroring CreatePayment on the
// payable side.
func (s *paymentService) CreateBillPayment(ctx context.Context, req dto.CreateBillPaymentRequest) (*domain.BillPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date: %s", apperrors.ErrValidation, req.PaymentDate)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	exists, err := s.contactRepo.ContactExists(ctx, req.VendorID, domain.ContactVendor)
	if err != nil {
		return nil, fmt.Errorf("failed to verify vendor: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: vendor %s not found", apperrors.ErrValidation, req.VendorID)
	}

	applied := decimal.Zero
	for i, app := range req.Applications {
		if !app.AmountApplied.IsPositive() {
			return nil, fmt.Errorf("%w: application %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		applied = applied.Add(app.AmountApplied)
	}
	if applied.GreaterThan(req.Amount) {
		return nil, fmt.Errorf("%w: applied total %s exceeds payment amount %s", apperrors.ErrValidation, applied, req.Amount)
	}

	now := time.Now().UTC()
	payment := domain.BillPayment{
		BillPaymentID:   uuid.NewString(),
		PaymentNumber:   req.PaymentNumber,
		VendorID:        req.VendorID,
		PaymentDate:     paymentDate,
		Amount:          req.Amount,
		UnappliedAmount: req.Amount.Sub(applied),
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Memo:            req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	applications := make([]domain.BillPaymentApplication, len(req.Applications))
	for i, app := range req.Applications {
		applications[i] = domain.BillPaymentApplication{
			ApplicationID: uuid.NewString(),
			BillPaymentID: payment.BillPaymentID,
			BillID:        app.BillID,
			AmountApplied: app.AmountApplied,
			CreatedAt:     now,
		}
	}

	if err := s.billPaymentRepo.SaveBillPayment(ctx, payment, applications); err != nil {
		logger.Error("Failed to save bill payment", slog.String("error", err.Error()))
		return nil, err
	}
	s.invalidateBills(ctx, payment.VendorID, applications)

	logger.Info("Bill payment created",
		slog.String("bill_payment_id", payment.BillPaymentID),
		slog.String("amount", payment.Amount.String()),
		slog.String("unapplied", payment.UnappliedAmount.String()),
	)
	return &payment, nil
}

// GetBillPaymentByID retrieves a bill payment and its applications.
func (s *paymentService) GetBillPaymentByID(ctx context.Context, billPaymentID string) (*domain.BillPayment, []domain.BillPaymentApplication, error) {
	payment, err := s.billPaymentRepo.FindBillPaymentByID(ctx, billPaymentID)
	if err != nil {
		return nil, nil, err
	}
	apps, err := s.billPaymentRepo.FindApplicationsByBillPaymentID(ctx, billPaymentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bill payment applications: %w", err)
	}
	return payment, apps, nil
}

// ListBillPayments retrieves bill payments, newest first.
func (s *paymentService) ListBillPayments(ctx context.Context, params dto.ListPaymentsParams) ([]domain.BillPayment, error) {
	payments, err := s.billPaymentRepo.ListBillPayments(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}
	if payments == nil {
		return []domain.BillPayment{}, nil
	}
	return payments, nil
}

// invalidateInvoices drops cached invoices whose balances just changed.
func (s *paymentService) invalidateInvoices(ctx context.Context, customerID string, applications []domain.PaymentApplication) {
	if s.cache == nil || len(applications) == 0 {
		return
	}
	keys := make([]string, 0, len(applications)+1)
	for _, app := range applications {
		keys = append(keys, invoiceCacheKey(app.InvoiceID))
	}
	keys = append(keys, customerInvoicesCacheKey(customerID))
	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Invoice cache invalidation failed", slog.String("error", err.Error()))
	}
}

// invalidateBills drops cached bills whose balances just changed.
func (s *paymentService) invalidateBills(ctx context.Context, vendorID string, applications []domain.BillPaymentApplication) {
	if s.cache == nil || len(applications) == 0 {
		return
	}
	keys := make([]string, 0, len(applications)+1)
	for _, app := range applications {
		keys = append(keys, billCacheKey(app.BillID))
	}
	keys = append(keys, vendorBillsCacheKey(vendorID))
	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Bill cache invalidation failed", slog.String("error", err.Error()))
	}
}
