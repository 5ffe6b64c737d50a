package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for report aggregation queries.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetTrialBalanceRows returns per-account signed balances as of a date,
// classified into debit/credit columns by the account's normal balance side.
// Balances within the 0.01 tolerance are excluded.
func (r *ReportingRepository) GetTrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		WITH account_balances AS (
			SELECT
				a.account_id,
				a.code,
				a.name,
				a.account_type,
				COALESCE(SUM(
					CASE
						WHEN a.account_type IN ('ASSET', 'EXPENSE') THEN tl.debit_amount - tl.credit_amount
						ELSE tl.credit_amount - tl.debit_amount
					END
				), 0) AS balance
			FROM accounts a
			INNER JOIN transaction_line_items tl ON a.account_id = tl.account_id
			INNER JOIN transactions t ON tl.transaction_id = t.transaction_id
			WHERE a.is_active = TRUE
			  AND t.status = 'POSTED'
			  AND t.transaction_date <= $1
			GROUP BY a.account_id, a.code, a.name, a.account_type
			HAVING ABS(COALESCE(SUM(
				CASE
					WHEN a.account_type IN ('ASSET', 'EXPENSE') THEN tl.debit_amount - tl.credit_amount
					ELSE tl.credit_amount - tl.debit_amount
				END
			), 0)) > 0.01
		)
		SELECT
			account_id,
			code,
			name,
			account_type,
			CASE
				WHEN account_type IN ('ASSET', 'EXPENSE') AND balance > 0 THEN balance
				WHEN account_type IN ('LIABILITY', 'EQUITY', 'REVENUE') AND balance < 0 THEN ABS(balance)
				ELSE 0
			END AS debit,
			CASE
				WHEN account_type IN ('ASSET', 'EXPENSE') AND balance < 0 THEN ABS(balance)
				WHEN account_type IN ('LIABILITY', 'EQUITY', 'REVENUE') AND balance > 0 THEN balance
				ELSE 0
			END AS credit,
			balance
		FROM account_balances
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance rows: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.Debit,
			&row.Credit,
			&row.Balance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// accountAmountQuery aggregates posted line item amounts per active account
// of one type. The signed expression and date predicate vary per report.
const accountAmountQuery = `
	SELECT
		a.account_id,
		a.code,
		a.name,
		COALESCE(SUM(%s), 0) AS amount
	FROM accounts a
	INNER JOIN transaction_line_items tl ON a.account_id = tl.account_id
	INNER JOIN transactions t ON tl.transaction_id = t.transaction_id
	WHERE a.account_type = $1
	  AND a.is_active = TRUE
	  AND t.status = 'POSTED'
	  AND %s
	GROUP BY a.account_id, a.code, a.name
	HAVING ABS(COALESCE(SUM(%s), 0)) > 0.01
	ORDER BY a.code;
`

const debitMinusCredit = `tl.debit_amount - tl.credit_amount`
const creditMinusDebit = `tl.credit_amount - tl.debit_amount`

func (r *ReportingRepository) queryAccountAmounts(ctx context.Context, signedExpr, datePred string, accountType domain.AccountType, dateArgs ...any) ([]domain.AccountAmount, error) {
	query := fmt.Sprintf(accountAmountQuery, signedExpr, datePred, signedExpr)
	args := append([]any{accountType}, dateArgs...)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s amounts: %w", accountType, err)
	}
	defer rows.Close()

	entries := []domain.AccountAmount{}
	for rows.Next() {
		var e domain.AccountAmount
		if err := rows.Scan(&e.AccountID, &e.AccountCode, &e.AccountName, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan %s amount row: %w", accountType, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s amount rows: %w", accountType, err)
	}
	return entries, nil
}

// GetProfitLossEntries returns revenue and expense totals per account over a period.
func (r *ReportingRepository) GetProfitLossEntries(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	const rangePred = `t.transaction_date BETWEEN $2 AND $3`

	revenue, err = r.queryAccountAmounts(ctx, creditMinusDebit, rangePred, domain.Revenue, from, to)
	if err != nil {
		return nil, nil, err
	}
	expenses, err = r.queryAccountAmounts(ctx, debitMinusCredit, rangePred, domain.Expense, from, to)
	if err != nil {
		return nil, nil, err
	}
	return revenue, expenses, nil
}

// GetBalanceSheetEntries returns cumulative asset, liability and equity balances as of a date.
func (r *ReportingRepository) GetBalanceSheetEntries(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	const asOfPred = `t.transaction_date <= $2`

	assets, err = r.queryAccountAmounts(ctx, debitMinusCredit, asOfPred, domain.Asset, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	liabilities, err = r.queryAccountAmounts(ctx, creditMinusDebit, asOfPred, domain.Liability, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	equity, err = r.queryAccountAmounts(ctx, creditMinusDebit, asOfPred, domain.Equity, asOf)
	if err != nil {
		return nil, nil, nil, err
	}
	return assets, liabilities, equity, nil
}

// GetARAgingRows returns per-customer outstanding invoice balances bucketed
// by days overdue as of a date. The query fetches outstanding invoices and
// the bucketing happens here via domain.AgingBucketFor. Paid and void
// invoices carry no balance and drop out on the balance predicate; paid is
// excluded explicitly to match the lifecycle rules even when a paid invoice
// retains a residual balance.
func (r *ReportingRepository) GetARAgingRows(ctx context.Context, asOf time.Time) ([]domain.AgingRow, error) {
	query := `
		SELECT
			c.contact_id,
			c.name,
			i.balance,
			i.due_date
		FROM invoices i
		INNER JOIN contacts c ON i.customer_id = c.contact_id
		WHERE i.balance > 0.01
		  AND i.invoice_date <= $1
		  AND i.status != 'PAID'
		ORDER BY c.name, c.contact_id;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query aging rows: %w", err)
	}
	defer rows.Close()

	byCustomer := map[string]*domain.AgingRow{}
	order := []string{}
	for rows.Next() {
		var customerID, customerName string
		var balance decimal.Decimal
		var dueDate time.Time
		if err := rows.Scan(&customerID, &customerName, &balance, &dueDate); err != nil {
			return nil, fmt.Errorf("failed to scan aging row: %w", err)
		}

		row, ok := byCustomer[customerID]
		if !ok {
			row = &domain.AgingRow{CustomerID: customerID, CustomerName: customerName}
			byCustomer[customerID] = row
			order = append(order, customerID)
		}
		daysPastDue := int(asOf.Sub(dueDate) / (24 * time.Hour))
		row.Add(domain.AgingBucketFor(daysPastDue), balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aging rows: %w", err)
	}

	result := []domain.AgingRow{}
	for _, id := range order {
		row := byCustomer[id]
		if row.Total.LessThanOrEqual(domain.ReportTolerance) {
			continue
		}
		result = append(result, *row)
	}
	return result, nil
}
