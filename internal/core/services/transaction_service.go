package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
	"github.com/shopspring/decimal"
)

type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewTransactionService creates the ledger transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateLineItems checks the double-entry invariants: at least two lines,
// each line strictly one-sided and positive, and total debits equal to total
// credits with a positive magnitude.
func validateLineItems(lines []dto.CreateTransactionLineItemRequest) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: a transaction requires at least two line items", apperrors.ErrValidation)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i, line := range lines {
		debitPositive := line.DebitAmount.IsPositive()
		creditPositive := line.CreditAmount.IsPositive()
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if debitPositive == creditPositive {
			return fmt.Errorf("%w: line %d must have exactly one of debitAmount or creditAmount positive", apperrors.ErrValidation, i+1)
		}
		totalDebits = totalDebits.Add(line.DebitAmount)
		totalCredits = totalCredits.Add(line.CreditAmount)
	}

	if !totalDebits.Equal(totalCredits) {
		return fmt.Errorf("%w: debits (%s) do not equal credits (%s)", apperrors.ErrValidation, totalDebits, totalCredits)
	}
	if !totalDebits.IsPositive() {
		return fmt.Errorf("%w: transaction total must be positive", apperrors.ErrValidation)
	}
	return nil
}

// validateAccounts checks that every referenced account exists and is active.
func (s *transactionService) validateAccounts(ctx context.Context, lines []dto.CreateTransactionLineItemRequest) error {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to verify accounts: %w", err)
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// CreateTransaction validates and persists a new transaction in draft status.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txnDate, err := dto.ParseDate(req.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid transaction date: %s", apperrors.ErrValidation, req.TransactionDate)
	}
	if err := validateLineItems(req.LineItems); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, req.LineItems); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TransactionDate: txnDate,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		ContactID:       req.ContactID,
		Status:          domain.TransactionDraft,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.JournalType != nil {
		jt := domain.JournalType(*req.JournalType)
		txn.JournalType = &jt
	}

	txn.LineItems = make([]domain.TransactionLineItem, len(req.LineItems))
	for i, line := range req.LineItems {
		txn.LineItems[i] = domain.TransactionLineItem{
			LineItemID:    uuid.NewString(),
			TransactionID: txn.TransactionID,
			AccountID:     line.AccountID,
			Description:   line.Description,
			DebitAmount:   line.DebitAmount,
			CreditAmount:  line.CreditAmount,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.Int("line_items", len(txn.LineItems)),
	)
	return &txn, nil
}

// GetTransactionByID retrieves a transaction and its line items.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	lines, err := s.txnRepo.FindLineItemsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	txn.LineItems = lines
	return txn, nil
}

// ListTransactions retrieves transactions matching the params, with lines.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.ListTransactionsFilter{
		AccountID: params.AccountID,
		ContactID: params.ContactID,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if params.Status != nil {
		status := domain.TransactionStatus(*params.Status)
		filter.Status = &status
	}
	if params.FromDate != nil {
		from, err := dto.ParseDate(*params.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fromDate: %s", apperrors.ErrValidation, *params.FromDate)
		}
		filter.FromDate = &from
	}
	if params.ToDate != nil {
		to, err := dto.ParseDate(*params.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid toDate: %s", apperrors.ErrValidation, *params.ToDate)
		}
		filter.ToDate = &to
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if len(txns) == 0 {
		return []domain.Transaction{}, nil
	}

	ids := make([]string, len(txns))
	for i, txn := range txns {
		ids[i] = txn.TransactionID
	}
	linesByTxn, err := s.txnRepo.FindLineItemsByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	for i := range txns {
		txns[i].LineItems = linesByTxn[txns[i].TransactionID]
	}
	return txns, nil
}

// UpdateTransactionStatus applies a lifecycle transition to a transaction.
func (s *transactionService) UpdateTransactionStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	next := domain.TransactionStatus(req.Status)
	if !txn.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: cannot move transaction from %s to %s", apperrors.ErrInvalidTransition, txn.Status, next)
	}

	now := time.Now().UTC()
	if err := s.txnRepo.UpdateTransactionStatus(ctx, transactionID, next, now); err != nil {
		logger.Error("Failed to update transaction status", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction status updated",
		slog.String("transaction_id", transactionID),
		slog.String("from", string(txn.Status)),
		slog.String("to", string(next)),
	)
	txn.Status = next
	txn.UpdatedAt = now
	return txn, nil
}

// DeleteTransaction removes a draft transaction. Posted and void transactions
// are part of the permanent record and cannot be deleted.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.TransactionDraft {
		return fmt.Errorf("%w: only draft transactions can be deleted, transaction is %s", apperrors.ErrConflict, txn.Status)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// GetAccountBalance computes an account's balance over posted transactions.
func (s *transactionService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	balance, err := s.txnRepo.GetAccountBalance(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute account balance: %w", err)
	}
	return balance, nil
}
