package services

import (
	"context"
	"errors"
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

var oneHundred = decimal.NewFromInt(100)

type invoiceService struct {
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	contactRepo portsrepo.ContactReader
	cache       ports.Cache
	entityTTL   time.Duration
}

// NewInvoiceService creates the customer invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, contactRepo portsrepo.ContactReader, cache ports.Cache, entityTTL time.Duration) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		cache:       cache,
		entityTTL:   entityTTL,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func invoiceCacheKey(invoiceID string) string {
	return "invoice:" + invoiceID
}

func customerInvoicesCacheKey(customerID string) string {
	return "customer:invoices:" + customerID
}

// lineAmount computes quantity * unitPrice less the optional percentage
// discount, without rounding.
func lineAmount(quantity, unitPrice decimal.Decimal, discountPercent *decimal.Decimal) decimal.Decimal {
	amount := quantity.Mul(unitPrice)
	if discountPercent != nil && discountPercent.IsPositive() {
		amount = amount.Sub(amount.Mul(*discountPercent).Div(oneHundred))
	}
	return amount
}

func validateInvoiceLine(i int, quantity, unitPrice decimal.Decimal, discountPercent *decimal.Decimal) error {
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: line %d unit price cannot be negative", apperrors.ErrValidation, i+1)
	}
	if discountPercent != nil && (discountPercent.IsNegative() || discountPercent.GreaterThan(oneHundred)) {
		return fmt.Errorf("%w: line %d discount must be between 0 and 100", apperrors.ErrValidation, i+1)
	}
	return nil
}

// CreateInvoice validates and persists a new invoice in draft status, with
// balance equal to the computed total.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoiceDate, err := dto.ParseDate(req.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid invoice date: %s", apperrors.ErrValidation, req.InvoiceDate)
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date: %s", apperrors.ErrValidation, req.DueDate)
	}

	exists, err := s.contactRepo.ContactExists(ctx, req.CustomerID, domain.ContactCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		Status:        domain.InvoiceDraft,
		CustomerMemo:  req.CustomerMemo,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	total := decimal.Zero
	invoice.LineItems = make([]domain.InvoiceLineItem, len(req.LineItems))
	for i, line := range req.LineItems {
		if err := validateInvoiceLine(i, line.Quantity, line.UnitPrice, line.DiscountPercent); err != nil {
			return nil, err
		}
		amount := lineAmount(line.Quantity, line.UnitPrice, line.DiscountPercent)
		total = total.Add(amount)
		invoice.LineItems[i] = domain.InvoiceLineItem{
			LineItemID:       uuid.NewString(),
			InvoiceID:        invoice.InvoiceID,
			LineNumber:       i + 1,
			Description:      line.Description,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitPrice,
			Amount:           amount,
			DiscountPercent:  line.DiscountPercent,
			RevenueAccountID: line.RevenueAccountID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}
	invoice.TotalAmount = total
	invoice.Balance = total

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		logger.Error("Failed to save invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.invalidate(ctx, customerInvoicesCacheKey(invoice.CustomerID))

	logger.Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", total.String()),
	)
	return &invoice, nil
}

// GetInvoiceByID retrieves an invoice and its line items, read-through cached.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		var cached domain.Invoice
		err := s.cache.GetJSON(ctx, invoiceCacheKey(invoiceID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("Invoice cache read failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.invoiceRepo.FindLineItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice line items: %w", err)
	}
	invoice.LineItems = lines

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, invoiceCacheKey(invoiceID), invoice, s.entityTTL); err != nil {
			logger.Warn("Invoice cache write failed", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		}
	}
	return invoice, nil
}

// ListInvoices retrieves invoices matching the params, newest first.
func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	filter := portsrepo.ListInvoicesFilter{
		CustomerID: params.CustomerID,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	if params.Status != nil {
		status := domain.InvoiceStatus(*params.Status)
		filter.Status = &status
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// GetCustomerInvoices retrieves all invoices of one customer.
func (s *invoiceService) GetCustomerInvoices(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		var cached []domain.Invoice
		err := s.cache.GetJSON(ctx, customerInvoicesCacheKey(customerID), &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("Customer invoices cache read failed", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
	}

	invoices, err := s.invoiceRepo.ListInvoices(ctx, portsrepo.ListInvoicesFilter{CustomerID: &customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list customer invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, customerInvoicesCacheKey(customerID), invoices, s.entityTTL); err != nil {
			logger.Warn("Customer invoices cache write failed", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
	}
	return invoices, nil
}

// GetOverdueInvoices retrieves invoices past due that still carry a balance.
func (s *invoiceService) GetOverdueInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.FindOverdueInvoices(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue invoices: %w", err)
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

// UpdateInvoiceStatus applies a lifecycle transition to an invoice.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, req dto.UpdateInvoiceStatusRequest) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	next := domain.InvoiceStatus(req.Status)
	if !invoice.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move invoice from %s to %s", apperrors.ErrInvalidTransition, invoice.Status, next)
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, next, now); err != nil {
		logger.Error("Failed to update invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, err
	}
	s.invalidate(ctx, invoiceCacheKey(invoiceID), customerInvoicesCacheKey(invoice.CustomerID))

	logger.Info("Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("from", string(invoice.Status)),
		slog.String("to", string(next)),
	)
	invoice.Status = next
	invoice.UpdatedAt = now
	return invoice, nil
}

// invalidate drops cached entries best-effort; a failed delete only means a
// stale read until the TTL expires.
func (s *invoiceService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Invoice cache invalidation failed", slog.String("error", err.Error()))
	}
}
