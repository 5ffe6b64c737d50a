package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillStatus indicates the state of a vendor bill. Open/Partial/Paid are
// derived from the balance; Void is the only manually driven state and is
// reachable from any non-void state.
type BillStatus string

const (
	BillOpen    BillStatus = "OPEN"
	BillPartial BillStatus = "PARTIAL"
	BillPaid    BillStatus = "PAID"
	BillVoid    BillStatus = "VOID"
)

// CanTransitionTo reports whether a manual status change is legal.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	switch s {
	case BillOpen, BillPartial, BillPaid:
		return true
	case BillVoid:
		return false
	}
	return false
}

// Bill represents a vendor payable. Balance starts equal to TotalAmount and
// strictly decreases as bill payment applications post against it.
type Bill struct {
	BillID      string          `json:"billID"` // Primary Key (UUID)
	BillNumber  string          `json:"billNumber"`
	VendorID    string          `json:"vendorID"`
	BillDate    time.Time       `json:"billDate"`
	DueDate     time.Time       `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Balance     decimal.Decimal `json:"balance"`
	Status      BillStatus      `json:"status"`
	Memo        string          `json:"memo"`
	LineItems   []BillLineItem  `json:"lineItems,omitempty"`
	AuditFields
}

// BillLineItem is one expense line on a bill.
type BillLineItem struct {
	LineItemID       string          `json:"lineItemID"` // Primary Key (UUID)
	BillID           string          `json:"billID"`
	LineNumber       int             `json:"lineNumber"` // Sequential from 1
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	Billable         bool            `json:"billable"`
	CustomerID       *string         `json:"customerID"` // Set when the expense is billable to a customer
	AuditFields
}
