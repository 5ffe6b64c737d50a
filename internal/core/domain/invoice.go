package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the state of a customer invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "DRAFT"
	InvoiceSent    InvoiceStatus = "SENT"
	InvoicePaid    InvoiceStatus = "PAID"
	InvoicePartial InvoiceStatus = "PARTIAL"
	InvoiceOverdue InvoiceStatus = "OVERDUE"
	InvoiceVoid    InvoiceStatus = "VOID"
)

// CanTransitionTo reports whether a manual status change is legal.
// Draft may move anywhere; Void is terminal.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return true
	case InvoiceSent:
		return next == InvoicePartial || next == InvoicePaid || next == InvoiceOverdue || next == InvoiceVoid
	case InvoicePartial:
		return next == InvoicePaid || next == InvoiceOverdue || next == InvoiceVoid
	case InvoiceOverdue:
		return next == InvoicePartial || next == InvoicePaid || next == InvoiceVoid
	case InvoicePaid:
		return next == InvoiceVoid
	case InvoiceVoid:
		return false
	}
	return false
}

// Invoice represents a customer receivable. Balance starts equal to
// TotalAmount and strictly decreases as payment applications post against it.
type Invoice struct {
	InvoiceID     string            `json:"invoiceID"` // Primary Key (UUID)
	InvoiceNumber string            `json:"invoiceNumber"`
	CustomerID    string            `json:"customerID"`
	InvoiceDate   time.Time         `json:"invoiceDate"`
	DueDate       time.Time         `json:"dueDate"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	Balance       decimal.Decimal   `json:"balance"`
	Status        InvoiceStatus     `json:"status"`
	CustomerMemo  string            `json:"customerMemo"`
	LineItems     []InvoiceLineItem `json:"lineItems,omitempty"`
	AuditFields
}

// InvoiceLineItem is one billed line on an invoice. Amount is computed as
// quantity * unit_price less the optional percentage discount.
type InvoiceLineItem struct {
	LineItemID       string           `json:"lineItemID"` // Primary Key (UUID)
	InvoiceID        string           `json:"invoiceID"`
	LineNumber       int              `json:"lineNumber"` // Sequential from 1
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Amount           decimal.Decimal  `json:"amount"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent"`
	RevenueAccountID string           `json:"revenueAccountID"`
	AuditFields
}
