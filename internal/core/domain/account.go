package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalanceIsDebit reports whether accounts of this type increase on the
// debit side. Asset and Expense accounts carry a debit normal balance;
// Liability, Equity and Revenue carry a credit normal balance.
func (t AccountType) NormalBalanceIsDebit() bool {
	switch t {
	case Asset, Expense:
		return true
	case Liability, Equity, Revenue:
		return false
	}
	return false
}

// Account represents a chart-of-accounts entry within the core domain.
// The ledger only reads accounts; the chart-of-accounts CRUD surface is
// owned externally.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique, sortable account code
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID *string     `json:"parentAccountID"` // Nullable self-reference
	IsActive        bool        `json:"isActive"`
	AuditFields
}

// AccountNode is an account with its direct children, used by the chart
// hierarchy view. Children are ordered by code.
type AccountNode struct {
	Account
	Children []AccountNode `json:"children,omitempty"`
}
