package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/core/ports"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountReader
	cache       ports.Cache
	entityTTL   time.Duration
}

// NewAccountService creates the read-only account directory service.
// cache may be nil, in which case every lookup goes to the repository.
func NewAccountService(repo portsrepo.AccountReader, cache ports.Cache, entityTTL time.Duration) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
		cache:       cache,
		entityTTL:   entityTTL,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func accountCacheKey(accountID string) string {
	return "account:" + accountID
}

// GetAccountByID retrieves a specific account, read-through cached.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		var cached domain.Account
		err := s.cache.GetJSON(ctx, accountCacheKey(accountID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("Account cache read failed", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, accountCacheKey(accountID), account, s.entityTTL); err != nil {
			logger.Warn("Account cache write failed", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
	}
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts at once, keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		logger.Error("Failed to find accounts by IDs in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, activeOnly)
	if err != nil {
		logger.Error("Failed to list accounts from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// GetAccountHierarchy retrieves the chart of accounts as a tree. Accounts
// whose parent is missing or inactive are promoted to the root level so no
// account silently disappears from the view.
func (s *accountService) GetAccountHierarchy(ctx context.Context) ([]domain.AccountNode, error) {
	accounts, err := s.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = true
	}

	children := make(map[string][]domain.Account)
	roots := []domain.Account{}
	for _, acc := range accounts {
		if acc.ParentAccountID != nil && byID[*acc.ParentAccountID] {
			children[*acc.ParentAccountID] = append(children[*acc.ParentAccountID], acc)
		} else {
			roots = append(roots, acc)
		}
	}

	var build func(accs []domain.Account) []domain.AccountNode
	build = func(accs []domain.Account) []domain.AccountNode {
		nodes := make([]domain.AccountNode, len(accs))
		for i, acc := range accs {
			nodes[i] = domain.AccountNode{
				Account:  acc,
				Children: build(children[acc.AccountID]),
			}
		}
		return nodes
	}
	return build(roots), nil
}
