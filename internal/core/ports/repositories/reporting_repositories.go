package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ReportingRepository defines the aggregation queries behind the financial
// reports. All queries consider posted transactions on active accounts only.
type ReportingRepository interface {
	// GetTrialBalanceRows returns per-account debit/credit balances as of a
	// date, excluding accounts whose balance rounds to zero.
	GetTrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitLossEntries returns revenue and expense totals per account
	// over a period.
	GetProfitLossEntries(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)

	// GetBalanceSheetEntries returns cumulative asset, liability and equity
	// balances as of a date.
	GetBalanceSheetEntries(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)

	// GetARAgingRows returns per-customer outstanding invoice balances
	// bucketed by days overdue as of a date.
	GetARAgingRows(ctx context.Context, asOf time.Time) ([]domain.AgingRow, error)
}
