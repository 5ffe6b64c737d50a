package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsFilter narrows ListTransactions results. Nil fields are
// ignored so filters compose without dynamic SQL at the call site.
type ListTransactionsFilter struct {
	Status    *domain.TransactionStatus
	AccountID *string
	ContactID *string
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	Offset    int
}

// TransactionReader defines read operations for ledger transactions.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindLineItemsByTransactionID retrieves all line items of a transaction,
	// ordered by creation.
	FindLineItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLineItem, error)

	// FindLineItemsByTransactionIDs retrieves line items for multiple
	// transactions, grouped by transaction ID.
	FindLineItemsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLineItem, error)

	// ListTransactions retrieves transaction headers matching the filter,
	// newest first.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.Transaction, error)

	// GetAccountBalance computes the signed debit-minus-credit sum over
	// posted line items for an account. A nil asOf means all dates.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger transactions.
type TransactionWriter interface {
	// SaveTransaction persists a transaction header and its line items
	// atomically. The transaction must already be balanced.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction to a new status. The legal
	// transitions are enforced by the caller.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedAt time.Time) error

	// DeleteTransaction removes a transaction and its line items atomically.
	// Only draft transactions may be deleted; the caller enforces this.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
