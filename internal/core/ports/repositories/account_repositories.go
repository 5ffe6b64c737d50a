package repositories

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// AccountReader defines read operations against the chart of accounts.
// The chart itself is maintained externally; the ledger only reads it.
type AccountReader interface {
	// FindAccountByID retrieves a single account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts at once, keyed by ID.
	// Missing IDs are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts ordered by code. When activeOnly is
	// true, inactive accounts are excluded.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)
}
