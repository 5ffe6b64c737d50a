package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ListBillsFilter narrows ListBills results. Nil fields are ignored.
type ListBillsFilter struct {
	VendorID *string
	Status   *domain.BillStatus
	Limit    int
	Offset   int
}

// BillReader defines read operations for vendor bills.
type BillReader interface {
	// FindBillByID retrieves a bill header by its unique identifier.
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// FindLineItemsByBillID retrieves a bill's line items ordered by line number.
	FindLineItemsByBillID(ctx context.Context, billID string) ([]domain.BillLineItem, error)

	// ListBills retrieves bill headers matching the filter, newest first.
	ListBills(ctx context.Context, filter ListBillsFilter) ([]domain.Bill, error)

	// FindOverdueBills retrieves bills whose due date has passed and which
	// still carry a balance, in open or partial status.
	FindOverdueBills(ctx context.Context, asOf time.Time) ([]domain.Bill, error)

	// CountBillApplications returns how many bill payment applications
	// reference the bill. A bill with applications must not be deleted.
	CountBillApplications(ctx context.Context, billID string) (int64, error)
}

// BillWriter defines write operations for vendor bills.
type BillWriter interface {
	// SaveBill persists a bill header and its line items atomically.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// UpdateBillStatus moves a bill to a new status.
	UpdateBillStatus(ctx context.Context, billID string, status domain.BillStatus, updatedAt time.Time) error

	// DeleteBill removes a bill and its line items atomically.
	DeleteBill(ctx context.Context, billID string) error
}

// BillRepositoryFacade combines all bill repository interfaces.
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}
