package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/core/ports"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/middleware"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	cache         ports.Cache
	reportTTL     time.Duration
	pnlTTL        time.Duration
}

// NewReportingService creates the financial reporting service. Reports are
// cached keyed by their date arguments; a nil cache disables caching without
// changing report semantics.
func NewReportingService(repo portsrepo.ReportingRepository, cache ports.Cache, reportTTL, pnlTTL time.Duration) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: repo,
		cache:         cache,
		reportTTL:     reportTTL,
		pnlTTL:        pnlTTL,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// cachedReport runs build on a cache miss and stores the result. Cache
// failures degrade to direct computation, never to an error.
func cachedReport[T any](ctx context.Context, cache ports.Cache, key string, ttl time.Duration, build func() (*T, error)) (*T, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if cache != nil {
		var cached T
		err := cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("Report cache read failed", slog.String("error", err.Error()), slog.String("key", key))
		}
	}

	report, err := build()
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.SetJSON(ctx, key, report, ttl); err != nil {
			logger.Warn("Report cache write failed", slog.String("error", err.Error()), slog.String("key", key))
		}
	}
	return report, nil
}

// TrialBalance generates a trial balance as of a specific date.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	key := "trial_balance:" + dto.FormatDate(asOf)
	return cachedReport(ctx, s.cache, key, s.reportTTL, func() (*domain.TrialBalance, error) {
		rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to compute trial balance: %w", err)
		}

		totalDebits := decimal.Zero
		totalCredits := decimal.Zero
		for _, row := range rows {
			totalDebits = totalDebits.Add(row.Debit)
			totalCredits = totalCredits.Add(row.Credit)
		}
		if rows == nil {
			rows = []domain.TrialBalanceRow{}
		}
		return &domain.TrialBalance{
			AsOfDate:     asOf,
			TotalDebits:  totalDebits,
			TotalCredits: totalCredits,
			IsBalanced:   totalDebits.Sub(totalCredits).Abs().LessThan(domain.ReportTolerance),
			Rows:         rows,
		}, nil
	})
}

// ProfitAndLoss generates a profit and loss statement for a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitLossStatement, error) {
	key := "profit_loss:" + dto.FormatDate(from) + ":" + dto.FormatDate(to)
	return cachedReport(ctx, s.cache, key, s.pnlTTL, func() (*domain.ProfitLossStatement, error) {
		revenue, expenses, err := s.reportingRepo.GetProfitLossEntries(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to compute profit and loss: %w", err)
		}

		totalRevenue := sumAmounts(revenue)
		totalExpenses := sumAmounts(expenses)
		if revenue == nil {
			revenue = []domain.AccountAmount{}
		}
		if expenses == nil {
			expenses = []domain.AccountAmount{}
		}
		return &domain.ProfitLossStatement{
			PeriodStart:   from,
			PeriodEnd:     to,
			TotalRevenue:  totalRevenue,
			TotalExpenses: totalExpenses,
			NetIncome:     totalRevenue.Sub(totalExpenses),
			Revenue:       revenue,
			Expenses:      expenses,
		}, nil
	})
}

// BalanceSheet generates a balance sheet as of a specific date.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	key := "balance_sheet:" + dto.FormatDate(asOf)
	return cachedReport(ctx, s.cache, key, s.reportTTL, func() (*domain.BalanceSheet, error) {
		assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetEntries(ctx, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance sheet: %w", err)
		}

		if assets == nil {
			assets = []domain.AccountAmount{}
		}
		if liabilities == nil {
			liabilities = []domain.AccountAmount{}
		}
		if equity == nil {
			equity = []domain.AccountAmount{}
		}
		return &domain.BalanceSheet{
			AsOfDate:         asOf,
			TotalAssets:      sumAmounts(assets),
			TotalLiabilities: sumAmounts(liabilities),
			TotalEquity:      sumAmounts(equity),
			Assets:           assets,
			Liabilities:      liabilities,
			Equity:           equity,
		}, nil
	})
}

// ARAging generates the accounts receivable aging report as of a date.
func (s *reportingService) ARAging(ctx context.Context, asOf time.Time) (*domain.ARAgingReport, error) {
	key := "ar_aging:" + dto.FormatDate(asOf)
	return cachedReport(ctx, s.cache, key, s.reportTTL, func() (*domain.ARAgingReport, error) {
		rows, err := s.reportingRepo.GetARAgingRows(ctx, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to compute AR aging: %w", err)
		}

		total := decimal.Zero
		for _, row := range rows {
			total = total.Add(row.Total)
		}
		if rows == nil {
			rows = []domain.AgingRow{}
		}
		return &domain.ARAgingReport{
			AsOfDate:         asOf,
			TotalOutstanding: total,
			Rows:             rows,
		}, nil
	})
}

func sumAmounts(entries []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
