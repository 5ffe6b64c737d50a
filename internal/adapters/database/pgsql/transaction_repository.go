package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, transaction_date, description, reference_number, contact_id, journal_type, status, created_at, updated_at`

const lineItemColumns = `line_item_id, transaction_id, account_id, description, debit_amount, credit_amount, created_at, updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.TransactionDate,
		&txn.Description,
		&txn.ReferenceNumber,
		&txn.ContactID,
		&txn.JournalType,
		&txn.Status,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	return txn, err
}

func scanLineItem(row pgx.Row) (domain.TransactionLineItem, error) {
	var li domain.TransactionLineItem
	err := row.Scan(
		&li.LineItemID,
		&li.TransactionID,
		&li.AccountID,
		&li.Description,
		&li.DebitAmount,
		&li.CreditAmount,
		&li.CreatedAt,
		&li.UpdatedAt,
	)
	return li, err
}

// SaveTransaction saves a transaction header and its line items within a DB transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, headerQuery,
		txn.TransactionID,
		txn.TransactionDate,
		txn.Description,
		txn.ReferenceNumber,
		txn.ContactID,
		txn.JournalType,
		txn.Status,
		txn.CreatedAt,
		txn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO transaction_line_items (` + lineItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, li := range txn.LineItems {
		batch.Queue(lineQuery,
			li.LineItemID,
			li.TransactionID,
			li.AccountID,
			li.Description,
			li.DebitAmount,
			li.CreditAmount,
			li.CreatedAt,
			li.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line item batch for transaction %s: %w", txn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindLineItemsByTransactionID retrieves all line items of a transaction.
func (r *PgxTransactionRepository) FindLineItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLineItem, error) {
	query := `
		SELECT ` + lineItemColumns + `
		FROM transaction_line_items
		WHERE transaction_id = $1
		ORDER BY created_at, line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	items := []domain.TransactionLineItem{}
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return items, nil
}

// FindLineItemsByTransactionIDs retrieves line items for multiple transactions, grouped by transaction ID.
func (r *PgxTransactionRepository) FindLineItemsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLineItem, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.TransactionLineItem{}, nil
	}
	query := `
		SELECT ` + lineItemColumns + `
		FROM transaction_line_items
		WHERE transaction_id = ANY($1)
		ORDER BY created_at, line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items by transaction IDs: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.TransactionLineItem, len(transactionIDs))
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		grouped[li.TransactionID] = append(grouped[li.TransactionID], li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return grouped, nil
}

// ListTransactions retrieves transaction headers matching the filter, newest first.
// Filter clauses are appended as numbered parameters; no user input is ever
// concatenated into the SQL text.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	var conds []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		conds = append(conds, fmt.Sprintf("transaction_id IN (SELECT transaction_id FROM transaction_line_items WHERE account_id = $%d)", len(args)))
	}
	if filter.ContactID != nil {
		args = append(args, *filter.ContactID)
		conds = append(conds, fmt.Sprintf("contact_id = $%d", len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		conds = append(conds, fmt.Sprintf("transaction_date >= $%d", len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		conds = append(conds, fmt.Sprintf("transaction_date <= $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// GetAccountBalance computes the signed debit-minus-credit sum over posted
// line items for an account.
func (r *PgxTransactionRepository) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(tli.debit_amount - tli.credit_amount), 0)
		FROM transaction_line_items tli
		INNER JOIN transactions t ON tli.transaction_id = t.transaction_id
		WHERE tli.account_id = $1 AND t.status = 'POSTED'
	`
	args := []any{accountID}
	if asOf != nil {
		args = append(args, *asOf)
		query += ` AND t.transaction_date <= $2`
	}

	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// UpdateTransactionStatus moves a transaction to a new status.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedAt time.Time) error {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE transaction_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, status, updatedAt, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction and its line items atomically.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_line_items WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete line items of transaction %s: %w", transactionID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
