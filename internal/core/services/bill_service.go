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

type billService struct {
	billRepo    portsrepo.BillRepositoryFacade
	contactRepo portsrepo.ContactReader
	cache       ports.Cache
	entityTTL   time.Duration
}

// NewBillService creates the vendor bill service.
func NewBillService(billRepo portsrepo.BillRepositoryFacade, contactRepo portsrepo.ContactReader, cache ports.Cache, entityTTL time.Duration) portssvc.BillSvcFacade {
	return &billService{
		billRepo:    billRepo,
		contactRepo: contactRepo,
		cache:       cache,
		entityTTL:   entityTTL,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

func billCacheKey(billID string) string {
	return "bill:" + billID
}

func vendorBillsCacheKey(vendorID string) string {
	return "vendor:bills:" + vendorID
}

// CreateBill validates and persists a new bill in open status, with balance
// equal to the sum of its line amounts.
func (s *billService) CreateBill(ctx context.Context, req dto.CreateBillRequest) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	billDate, err := dto.ParseDate(req.BillDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bill date: %s", apperrors.ErrValidation, req.BillDate)
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date: %s", apperrors.ErrValidation, req.DueDate)
	}

	exists, err := s.contactRepo.ContactExists(ctx, req.VendorID, domain.ContactVendor)
	if err != nil {
		return nil, fmt.Errorf("failed to verify vendor: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: vendor %s not found", apperrors.ErrValidation, req.VendorID)
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:     uuid.NewString(),
		BillNumber: req.BillNumber,
		VendorID:   req.VendorID,
		BillDate:   billDate,
		DueDate:    dueDate,
		Status:     domain.BillOpen,
		Memo:       req.Memo,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	total := decimal.Zero
	bill.LineItems = make([]domain.BillLineItem, len(req.LineItems))
	for i, line := range req.LineItems {
		if !line.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		if line.Billable && line.CustomerID == nil {
			return nil, fmt.Errorf("%w: line %d is billable but has no customer", apperrors.ErrValidation, i+1)
		}
		total = total.Add(line.Amount)
		bill.LineItems[i] = domain.BillLineItem{
			LineItemID:       uuid.NewString(),
			BillID:           bill.BillID,
			LineNumber:       i + 1,
			Description:      line.Description,
			Amount:           line.Amount,
			ExpenseAccountID: line.ExpenseAccountID,
			Billable:         line.Billable,
			CustomerID:       line.CustomerID,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}
	bill.TotalAmount = total
	bill.Balance = total

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		logger.Error("Failed to save bill", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}
	s.invalidate(ctx, vendorBillsCacheKey(bill.VendorID))

	logger.Info("Bill created",
		slog.String("bill_id", bill.BillID),
		slog.String("bill_number", bill.BillNumber),
		slog.String("total", total.String()),
	)
	return &bill, nil
}

// GetBillByID retrieves a bill and its line items, read-through cached.
func (s *billService) GetBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		var cached domain.Bill
		err := s.cache.GetJSON(ctx, billCacheKey(billID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("Bill cache read failed", slog.String("error", err.Error()), slog.String("bill_id", billID))
		}
	}

	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	lines, err := s.billRepo.FindLineItemsByBillID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill line items: %w", err)
	}
	bill.LineItems = lines

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, billCacheKey(billID), bill, s.entityTTL); err != nil {
			logger.Warn("Bill cache write failed", slog.String("error", err.Error()), slog.String("bill_id", billID))
		}
	}
	return bill, nil
}

// ListBills retrieves bills matching the params, newest first.
func (s *billService) ListBills(ctx context.Context, params dto.ListBillsParams) ([]domain.Bill, error) {
	filter := portsrepo.ListBillsFilter{
		VendorID: params.VendorID,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if params.Status != nil {
		status := domain.BillStatus(*params.Status)
		filter.Status = &status
	}
	bills, err := s.billRepo.ListBills(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// GetVendorBills retrieves all bills of one vendor.
func (s *billService) GetVendorBills(ctx context.Context, vendorID string) ([]domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		var cached []domain.Bill
		err := s.cache.GetJSON(ctx, vendorBillsCacheKey(vendorID), &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("Vendor bills cache read failed", slog.String("error", err.Error()), slog.String("vendor_id", vendorID))
		}
	}

	bills, err := s.billRepo.ListBills(ctx, portsrepo.ListBillsFilter{VendorID: &vendorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list vendor bills: %w", err)
	}
	if bills == nil {
		bills = []domain.Bill{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, vendorBillsCacheKey(vendorID), bills, s.entityTTL); err != nil {
			logger.Warn("Vendor bills cache write failed", slog.String("error", err.Error()), slog.String("vendor_id", vendorID))
		}
	}
	return bills, nil
}

// GetOverdueBills retrieves bills past due that still carry a balance.
func (s *billService) GetOverdueBills(ctx context.Context) ([]domain.Bill, error) {
	bills, err := s.billRepo.FindOverdueBills(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue bills: %w", err)
	}
	if bills == nil {
		return []domain.Bill{}, nil
	}
	return bills, nil
}

// UpdateBillStatus applies a lifecycle transition to a bill.
func (s *billService) UpdateBillStatus(ctx context.Context, billID string, req dto.UpdateBillStatusRequest) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	next := domain.BillStatus(req.Status)
	if !bill.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move bill from %s to %s", apperrors.ErrInvalidTransition, bill.Status, next)
	}

	now := time.Now().UTC()
	if err := s.billRepo.UpdateBillStatus(ctx, billID, next, now); err != nil {
		logger.Error("Failed to update bill status", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, err
	}
	s.invalidate(ctx, billCacheKey(billID), vendorBillsCacheKey(bill.VendorID))

	logger.Info("Bill status updated",
		slog.String("bill_id", billID),
		slog.String("from", string(bill.Status)),
		slog.String("to", string(next)),
	)
	bill.Status = next
	bill.UpdatedAt = now
	return bill, nil
}

// DeleteBill removes a bill. Bills that have payment applications are part of
// the payment history and cannot be deleted.
func (s *billService) DeleteBill(ctx context.Context, billID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		return err
	}

	applications, err := s.billRepo.CountBillApplications(ctx, billID)
	if err != nil {
		return fmt.Errorf("failed to count bill applications: %w", err)
	}
	if applications > 0 {
		return fmt.Errorf("%w: bill has %d payment applications and cannot be deleted", apperrors.ErrConflict, applications)
	}

	if err := s.billRepo.DeleteBill(ctx, billID); err != nil {
		logger.Error("Failed to delete bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return err
	}
	s.invalidate(ctx, billCacheKey(billID), vendorBillsCacheKey(bill.VendorID))
	logger.Info("Bill deleted", slog.String("bill_id", billID))
	return nil
}

func (s *billService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Bill cache invalidation failed", slog.String("error", err.Error()))
	}
}
