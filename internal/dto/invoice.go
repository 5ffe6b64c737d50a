package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineItemRequest is one billed line of a new invoice.
// Amount is derived server side as quantity * unitPrice less the discount.
type CreateInvoiceLineItemRequest struct {
	Description      string           `json:"description" binding:"required"`
	Quantity         decimal.Decimal  `json:"quantity" binding:"dgt0"`
	UnitPrice        decimal.Decimal  `json:"unitPrice" binding:"dgte0"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent"`
	RevenueAccountID string           `json:"revenueAccountID" binding:"required"`
}

// CreateInvoiceRequest defines the data needed to create an invoice.
type CreateInvoiceRequest struct {
	InvoiceNumber string                         `json:"invoiceNumber" binding:"required"`
	CustomerID    string                         `json:"customerID" binding:"required"`
	InvoiceDate   string                         `json:"invoiceDate" binding:"required,datetime=2006-01-02"`
	DueDate       string                         `json:"dueDate" binding:"required,datetime=2006-01-02"`
	CustomerMemo  string                         `json:"customerMemo"`
	LineItems     []CreateInvoiceLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateInvoiceStatusRequest defines an invoice status transition request.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT SENT PAID PARTIAL OVERDUE VOID"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	CustomerID *string `form:"customerID"`
	Status     *string `form:"status" binding:"omitempty,oneof=DRAFT SENT PAID PARTIAL OVERDUE VOID"`
	Limit      int     `form:"limit,default=50"`
	Offset     int     `form:"offset,default=0"`
}

// InvoiceLineItemResponse defines the data returned for one invoice line.
type InvoiceLineItemResponse struct {
	LineItemID       string           `json:"lineItemID"`
	LineNumber       int              `json:"lineNumber"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Amount           decimal.Decimal  `json:"amount"`
	DiscountPercent  *decimal.Decimal `json:"discountPercent,omitempty"`
	RevenueAccountID string           `json:"revenueAccountID"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string                    `json:"invoiceID"`
	InvoiceNumber string                    `json:"invoiceNumber"`
	CustomerID    string                    `json:"customerID"`
	InvoiceDate   string                    `json:"invoiceDate"`
	DueDate       string                    `json:"dueDate"`
	TotalAmount   decimal.Decimal           `json:"totalAmount"`
	Balance       decimal.Decimal           `json:"balance"`
	Status        domain.InvoiceStatus      `json:"status"`
	CustomerMemo  string                    `json:"customerMemo,omitempty"`
	LineItems     []InvoiceLineItemResponse `json:"lineItems,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineItemResponse, len(inv.LineItems))
	for i, li := range inv.LineItems {
		lines[i] = InvoiceLineItemResponse{
			LineItemID:       li.LineItemID,
			LineNumber:       li.LineNumber,
			Description:      li.Description,
			Quantity:         li.Quantity,
			UnitPrice:        li.UnitPrice,
			Amount:           li.Amount,
			DiscountPercent:  li.DiscountPercent,
			RevenueAccountID: li.RevenueAccountID,
		}
	}
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		InvoiceDate:   FormatDate(inv.InvoiceDate),
		DueDate:       FormatDate(inv.DueDate),
		TotalAmount:   inv.TotalAmount,
		Balance:       inv.Balance,
		Status:        inv.Status,
		CustomerMemo:  inv.CustomerMemo,
		LineItems:     lines,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice to response DTOs.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		responses[i] = ToInvoiceResponse(&inv)
	}
	return responses
}
