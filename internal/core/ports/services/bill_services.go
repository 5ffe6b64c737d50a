package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// BillReaderSvc defines read operations for vendor bills.
type BillReaderSvc interface {
	// GetBillByID retrieves a bill with its line items.
	GetBillByID(ctx context.Context, billID string) (*domain.Bill, error)

	// ListBills retrieves bills matching the filter params, newest first.
	ListBills(ctx context.Context, params dto.ListBillsParams) ([]domain.Bill, error)

	// GetVendorBills retrieves all bills of one vendor, newest first.
	GetVendorBills(ctx context.Context, vendorID string) ([]domain.Bill, error)

	// GetOverdueBills retrieves bills past their due date that still carry
	// a balance.
	GetOverdueBills(ctx context.Context) ([]domain.Bill, error)
}

// BillWriterSvc defines write operations for vendor bills.
type BillWriterSvc interface {
	// CreateBill validates and persists a new bill in open status.
	CreateBill(ctx context.Context, req dto.CreateBillRequest) (*domain.Bill, error)

	// UpdateBillStatus moves a bill through its status lifecycle.
	UpdateBillStatus(ctx context.Context, billID string, req dto.UpdateBillStatusRequest) (*domain.Bill, error)

	// DeleteBill removes a bill that has no payment applications.
	DeleteBill(ctx context.Context, billID string) error
}

// BillSvcFacade combines all bill-related service interfaces.
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
}
