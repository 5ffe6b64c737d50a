package services

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating financial reports.
// Reports read posted transactions only and are served read-through from
// the cache when one is configured.
type ReportingSvcFacade interface {
	// TrialBalance generates a trial balance as of a specific date.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss statement for a period.
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitLossStatement, error)

	// BalanceSheet generates a balance sheet as of a specific date.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// ARAging generates the accounts receivable aging report as of a date.
	ARAging(ctx context.Context, asOf time.Time) (*domain.ARAgingReport, error)
}
