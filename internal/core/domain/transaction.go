package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a ledger transaction.
type TransactionStatus string

const (
	TransactionDraft  TransactionStatus = "DRAFT"
	TransactionPosted TransactionStatus = "POSTED"
	TransactionVoid   TransactionStatus = "VOID"
)

// CanTransitionTo reports whether a status change is legal.
// The transition table is closed: Draft may be posted or voided, Posted may
// only be voided, Void is terminal. Posted can never revert to Draft.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TransactionDraft:
		return next == TransactionPosted || next == TransactionVoid
	case TransactionPosted:
		return next == TransactionVoid
	case TransactionVoid:
		return false
	}
	return false
}

// JournalType classifies the originating journal of a transaction.
type JournalType string

const (
	JournalGeneral      JournalType = "GENERAL"
	JournalSales        JournalType = "SALES"
	JournalCashReceipts JournalType = "CASH_RECEIPTS"
	JournalPurchases    JournalType = "PURCHASES"
)

// Transaction represents a single, balanced double-entry event composed of
// two or more line items. Line items are immutable once created; the
// transaction itself is mutated only through status transitions.
type Transaction struct {
	TransactionID   string                `json:"transactionID"` // Primary Key (UUID)
	TransactionDate time.Time             `json:"transactionDate"`
	Description     string                `json:"description"`
	ReferenceNumber string                `json:"referenceNumber"`
	ContactID       *string               `json:"contactID"`
	JournalType     *JournalType          `json:"journalType"`
	Status          TransactionStatus     `json:"status"`
	LineItems       []TransactionLineItem `json:"lineItems,omitempty"`
	AuditFields
}

// TransactionLineItem is one leg of a transaction, affecting one account.
// Exactly one of DebitAmount/CreditAmount is strictly positive.
type TransactionLineItem struct {
	LineItemID    string          `json:"lineItemID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Description   string          `json:"description"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	AuditFields
}
