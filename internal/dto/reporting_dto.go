package dto

import (
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportAsOfParams defines the query parameters of as-of-date reports.
// AsOf defaults to today when omitted.
type ReportAsOfParams struct {
	AsOf *string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// ReportPeriodParams defines the query parameters of period reports.
type ReportPeriodParams struct {
	FromDate string `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Revenue  []AccountAmountResponse `json:"revenue"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string                  `json:"asOf"`
	Assets      []AccountAmountResponse `json:"assets"`
	Liabilities []AccountAmountResponse `json:"liabilities"`
	Equity      []AccountAmountResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
}

// ARAgingRowResponse represents one customer's bucketed balances in the
// accounts receivable aging report.
type ARAgingRowResponse struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days1To30"`
	Days31To60   decimal.Decimal `json:"days31To60"`
	Days61To90   decimal.Decimal `json:"days61To90"`
	Days91Plus   decimal.Decimal `json:"days91Plus"`
	Total        decimal.Decimal `json:"total"`
}

// ARAgingResponse represents the accounts receivable aging report response
type ARAgingResponse struct {
	AsOf             string               `json:"asOf"`
	Rows             []ARAgingRowResponse `json:"rows"`
	TotalOutstanding decimal.Decimal      `json:"totalOutstanding"`
}

// ToTrialBalanceResponse converts the domain report to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, r := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   r.AccountID,
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			AccountType: string(r.AccountType),
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	resp := TrialBalanceResponse{
		AsOf:       FormatDate(tb.AsOfDate),
		Rows:       rows,
		IsBalanced: tb.IsBalanced,
	}
	resp.Totals.Debit = tb.TotalDebits
	resp.Totals.Credit = tb.TotalCredits
	return resp
}

func toAccountAmountResponses(entries []domain.AccountAmount) []AccountAmountResponse {
	res := make([]AccountAmountResponse, len(entries))
	for i, e := range entries {
		res[i] = AccountAmountResponse{
			AccountID:   e.AccountID,
			AccountCode: e.AccountCode,
			Name:        e.AccountName,
			Amount:      e.Amount,
		}
	}
	return res
}

// ToProfitAndLossResponse converts the domain report to its response DTO.
func ToProfitAndLossResponse(pl *domain.ProfitLossStatement) ProfitAndLossResponse {
	resp := ProfitAndLossResponse{
		FromDate: FormatDate(pl.PeriodStart),
		ToDate:   FormatDate(pl.PeriodEnd),
		Revenue:  toAccountAmountResponses(pl.Revenue),
		Expenses: toAccountAmountResponses(pl.Expenses),
	}
	resp.Summary.TotalRevenue = pl.TotalRevenue
	resp.Summary.TotalExpenses = pl.TotalExpenses
	resp.Summary.NetIncome = pl.NetIncome
	return resp
}

// ToBalanceSheetResponse converts the domain report to its response DTO.
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        FormatDate(bs.AsOfDate),
		Assets:      toAccountAmountResponses(bs.Assets),
		Liabilities: toAccountAmountResponses(bs.Liabilities),
		Equity:      toAccountAmountResponses(bs.Equity),
	}
	resp.Summary.TotalAssets = bs.TotalAssets
	resp.Summary.TotalLiabilities = bs.TotalLiabilities
	resp.Summary.TotalEquity = bs.TotalEquity
	return resp
}

// ToARAgingResponse converts the domain report to its response DTO.
func ToARAgingResponse(r *domain.ARAgingReport) ARAgingResponse {
	rows := make([]ARAgingRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = ARAgingRowResponse{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			Current:      row.Current,
			Days1To30:    row.Days1To30,
			Days31To60:   row.Days31To60,
			Days61To90:   row.Days61To90,
			Days91Plus:   row.Days91Plus,
			Total:        row.Total,
		}
	}
	return ARAgingResponse{
		AsOf:             FormatDate(r.AsOfDate),
		Rows:             rows,
		TotalOutstanding: r.TotalOutstanding,
	}
}
