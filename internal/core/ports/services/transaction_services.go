package services

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
)

// TransactionReaderSvc defines read operations for ledger transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its line items.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter params,
	// newest first, each with its line items.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for ledger transactions.
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a new balanced transaction
	// in draft status.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransactionStatus moves a transaction through its status
	// lifecycle, rejecting illegal transitions.
	UpdateTransactionStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a draft transaction and its line items.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// BalanceCalculatorSvc defines balance computations over posted transactions.
type BalanceCalculatorSvc interface {
	// GetAccountBalance computes the signed debit-minus-credit balance of
	// an account over posted transactions. A nil asOf means all dates.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	BalanceCalculatorSvc
}
