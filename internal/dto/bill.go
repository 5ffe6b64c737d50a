package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillLineItemRequest is one expense line of a new bill.
type CreateBillLineItemRequest struct {
	Description      string          `json:"description" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"dgt0"`
	ExpenseAccountID string          `json:"expenseAccountID" binding:"required"`
	Billable         bool            `json:"billable"`
	CustomerID       *string         `json:"customerID"`
}

// CreateBillRequest defines the data needed to create a bill.
type CreateBillRequest struct {
	BillNumber string                      `json:"billNumber" binding:"required"`
	VendorID   string                      `json:"vendorID" binding:"required"`
	BillDate   string                      `json:"billDate" binding:"required,datetime=2006-01-02"`
	DueDate    string                      `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Memo       string                      `json:"memo"`
	LineItems  []CreateBillLineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateBillStatusRequest defines a bill status transition request.
type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN PARTIAL PAID VOID"`
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	VendorID *string `form:"vendorID"`
	Status   *string `form:"status" binding:"omitempty,oneof=OPEN PARTIAL PAID VOID"`
	Limit    int     `form:"limit,default=50"`
	Offset   int     `form:"offset,default=0"`
}

// BillLineItemResponse defines the data returned for one bill line.
type BillLineItemResponse struct {
	LineItemID       string          `json:"lineItemID"`
	LineNumber       int             `json:"lineNumber"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	ExpenseAccountID string          `json:"expenseAccountID"`
	Billable         bool            `json:"billable"`
	CustomerID       *string         `json:"customerID,omitempty"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID      string                 `json:"billID"`
	BillNumber  string                 `json:"billNumber"`
	VendorID    string                 `json:"vendorID"`
	BillDate    string                 `json:"billDate"`
	DueDate     string                 `json:"dueDate"`
	TotalAmount decimal.Decimal        `json:"totalAmount"`
	Balance     decimal.Decimal        `json:"balance"`
	Status      domain.BillStatus      `json:"status"`
	Memo        string                 `json:"memo,omitempty"`
	LineItems   []BillLineItemResponse `json:"lineItems,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// ListBillsResponse wraps the list of bills.
type ListBillsResponse struct {
	Bills []BillResponse `json:"bills"`
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(bill *domain.Bill) BillResponse {
	lines := make([]BillLineItemResponse, len(bill.LineItems))
	for i, li := range bill.LineItems {
		lines[i] = BillLineItemResponse{
			LineItemID:       li.LineItemID,
			LineNumber:       li.LineNumber,
			Description:      li.Description,
			Amount:           li.Amount,
			ExpenseAccountID: li.ExpenseAccountID,
			Billable:         li.Billable,
			CustomerID:       li.CustomerID,
		}
	}
	return BillResponse{
		BillID:      bill.BillID,
		BillNumber:  bill.BillNumber,
		VendorID:    bill.VendorID,
		BillDate:    FormatDate(bill.BillDate),
		DueDate:     FormatDate(bill.DueDate),
		TotalAmount: bill.TotalAmount,
		Balance:     bill.Balance,
		Status:      bill.Status,
		Memo:        bill.Memo,
		LineItems:   lines,
		CreatedAt:   bill.CreatedAt,
		UpdatedAt:   bill.UpdatedAt,
	}
}

// ToBillResponses converts a slice of domain.Bill to response DTOs.
func ToBillResponses(bills []domain.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i, bill := range bills {
		responses[i] = ToBillResponse(&bill)
	}
	return responses
}
