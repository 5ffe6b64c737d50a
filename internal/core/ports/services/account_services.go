package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// AccountReaderSvc defines read operations against the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts at once, keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)

	// GetAccountHierarchy retrieves the chart of accounts as a tree, with
	// child accounts grouped under their parents.
	GetAccountHierarchy(ctx context.Context) ([]domain.AccountNode, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
}
