package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportTolerance is the rounding tolerance used when classifying report
// rows and checking the report balance laws.
var ReportTolerance = decimal.New(1, -2) // 0.01

// TrialBalanceRow is one account line of the trial balance. Exactly one of
// Debit/Credit is non-zero, classified by the account's normal balance side.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance lists every account's debit or credit balance as of a date.
type TrialBalance struct {
	AsOfDate     time.Time         `json:"asOfDate"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
	Rows         []TrialBalanceRow `json:"rows"`
}

// AccountAmount is an account paired with an aggregated amount, used by the
// profit and loss and balance sheet reports.
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProfitLossStatement aggregates revenue and expenses over a period.
type ProfitLossStatement struct {
	PeriodStart   time.Time       `json:"periodStart"`
	PeriodEnd     time.Time       `json:"periodEnd"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
}

// BalanceSheet lists cumulative asset, liability and equity balances as of a
// date. Invariant: TotalAssets == TotalLiabilities + TotalEquity within the
// report tolerance.
type BalanceSheet struct {
	AsOfDate         time.Time       `json:"asOfDate"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
}

// AgingBucket identifies one column of the AR aging report.
type AgingBucket int

const (
	BucketCurrent AgingBucket = iota
	Bucket1To30
	Bucket31To60
	Bucket61To90
	Bucket91Plus
)

// AgingBucketFor classifies days past due into an aging column. Invoices
// due today or later are current; day 1 starts the 1-30 column.
func AgingBucketFor(daysPastDue int) AgingBucket {
	switch {
	case daysPastDue <= 0:
		return BucketCurrent
	case daysPastDue <= 30:
		return Bucket1To30
	case daysPastDue <= 60:
		return Bucket31To60
	case daysPastDue <= 90:
		return Bucket61To90
	default:
		return Bucket91Plus
	}
}

// AgingRow buckets one customer's outstanding invoice balances by days
// overdue. Total equals the sum of the five buckets.
type AgingRow struct {
	CustomerID   string          `json:"customerID"`
	CustomerName string          `json:"customerName"`
	Current      decimal.Decimal `json:"current"`
	Days1To30    decimal.Decimal `json:"days1To30"`
	Days31To60   decimal.Decimal `json:"days31To60"`
	Days61To90   decimal.Decimal `json:"days61To90"`
	Days91Plus   decimal.Decimal `json:"days91Plus"`
	Total        decimal.Decimal `json:"total"`
}

// Add accrues an outstanding balance into the given bucket and the row total.
func (r *AgingRow) Add(bucket AgingBucket, amount decimal.Decimal) {
	switch bucket {
	case BucketCurrent:
		r.Current = r.Current.Add(amount)
	case Bucket1To30:
		r.Days1To30 = r.Days1To30.Add(amount)
	case Bucket31To60:
		r.Days31To60 = r.Days31To60.Add(amount)
	case Bucket61To90:
		r.Days61To90 = r.Days61To90.Add(amount)
	case Bucket91Plus:
		r.Days91Plus = r.Days91Plus.Add(amount)
	}
	r.Total = r.Total.Add(amount)
}

// ARAgingReport is the accounts receivable aging report as of a date.
type ARAgingReport struct {
	AsOfDate         time.Time       `json:"asOfDate"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	Rows             []AgingRow      `json:"rows"`
}
