package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionLineItemRequest is one line of a new transaction.
// Exactly one of debitAmount/creditAmount must be positive; the service
// enforces the exclusivity since it spans two fields.
type CreateTransactionLineItemRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount" binding:"dgte0"`
	CreditAmount decimal.Decimal `json:"creditAmount" binding:"dgte0"`
}

// CreateTransactionRequest defines the data needed to create a transaction.
type CreateTransactionRequest struct {
	TransactionDate string                             `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Description     string                             `json:"description" binding:"required"`
	ReferenceNumber string                             `json:"referenceNumber"`
	ContactID       *string                            `json:"contactID"`
	JournalType     *string                            `json:"journalType" binding:"omitempty,oneof=GENERAL SALES CASH_RECEIPTS PURCHASES"`
	LineItems       []CreateTransactionLineItemRequest `json:"lineItems" binding:"required,min=2,dive"`
}

// UpdateTransactionStatusRequest defines a status transition request.
// Illegal transitions are rejected by the service, not by binding.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT POSTED VOID"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT POSTED VOID"`
	AccountID *string `form:"accountID"`
	ContactID *string `form:"contactID"`
	FromDate  *string `form:"fromDate" binding:"omitempty,datetime=2006-01-02"`
	ToDate    *string `form:"toDate" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit,default=50"`
	Offset    int     `form:"offset,default=0"`
}

// TransactionLineItemResponse defines the data returned for one line item.
type TransactionLineItemResponse struct {
	LineItemID   string          `json:"lineItemID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                        `json:"transactionID"`
	TransactionDate string                        `json:"transactionDate"`
	Description     string                        `json:"description"`
	ReferenceNumber string                        `json:"referenceNumber,omitempty"`
	ContactID       *string                       `json:"contactID,omitempty"`
	JournalType     *string                       `json:"journalType,omitempty"`
	Status          domain.TransactionStatus      `json:"status"`
	LineItems       []TransactionLineItemResponse `json:"lineItems"`
	CreatedAt       time.Time                     `json:"createdAt"`
	UpdatedAt       time.Time                     `json:"updatedAt"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionLineItemResponse converts a domain line item to its DTO.
func ToTransactionLineItemResponse(li *domain.TransactionLineItem) TransactionLineItemResponse {
	return TransactionLineItemResponse{
		LineItemID:   li.LineItemID,
		AccountID:    li.AccountID,
		Description:  li.Description,
		DebitAmount:  li.DebitAmount,
		CreditAmount: li.CreditAmount,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	lines := make([]TransactionLineItemResponse, len(txn.LineItems))
	for i, li := range txn.LineItems {
		lines[i] = ToTransactionLineItemResponse(&li)
	}
	var journalType *string
	if txn.JournalType != nil {
		jt := string(*txn.JournalType)
		journalType = &jt
	}
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		TransactionDate: FormatDate(txn.TransactionDate),
		Description:     txn.Description,
		ReferenceNumber: txn.ReferenceNumber,
		ContactID:       txn.ContactID,
		JournalType:     journalType,
		Status:          txn.Status,
		LineItems:       lines,
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
