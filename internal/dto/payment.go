package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentApplicationRequest distributes part of a payment to one invoice.
type PaymentApplicationRequest struct {
	InvoiceID     string          `json:"invoiceID" binding:"required"`
	AmountApplied decimal.Decimal `json:"amountApplied" binding:"dgt0"`
}

// CreatePaymentRequest defines the data needed to record a customer payment.
// Applications are optional; the sum of applied amounts must not exceed the
// payment amount.
type CreatePaymentRequest struct {
	PaymentNumber   string                      `json:"paymentNumber" binding:"required"`
	CustomerID      string                      `json:"customerID" binding:"required"`
	PaymentDate     string                      `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Amount          decimal.Decimal             `json:"amount" binding:"dgt0"`
	PaymentMethod   string                      `json:"paymentMethod" binding:"required"`
	ReferenceNumber string                      `json:"referenceNumber"`
	Memo            string                      `json:"memo"`
	Applications    []PaymentApplicationRequest `json:"applications" binding:"omitempty,dive"`
}

// ApplyPaymentRequest applies an existing payment's unapplied funds.
type ApplyPaymentRequest struct {
	Applications []PaymentApplicationRequest `json:"applications" binding:"required,min=1,dive"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// PaymentApplicationResponse defines the data returned for one application.
type PaymentApplicationResponse struct {
	ApplicationID string          `json:"applicationID"`
	InvoiceID     string          `json:"invoiceID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string                       `json:"paymentID"`
	PaymentNumber   string                       `json:"paymentNumber"`
	CustomerID      string                       `json:"customerID"`
	PaymentDate     string                       `json:"paymentDate"`
	Amount          decimal.Decimal              `json:"amount"`
	UnappliedAmount decimal.Decimal              `json:"unappliedAmount"`
	PaymentMethod   string                       `json:"paymentMethod"`
	ReferenceNumber string                       `json:"referenceNumber,omitempty"`
	Memo            string                       `json:"memo,omitempty"`
	Applications    []PaymentApplicationResponse `json:"applications,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	UpdatedAt       time.Time                    `json:"updatedAt"`
}

// ListPaymentsResponse wraps the list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToPaymentResponse converts a domain.Payment and its applications to a DTO.
func ToPaymentResponse(p *domain.Payment, apps []domain.PaymentApplication) PaymentResponse {
	appResponses := make([]PaymentApplicationResponse, len(apps))
	for i, app := range apps {
		appResponses[i] = PaymentApplicationResponse{
			ApplicationID: app.ApplicationID,
			InvoiceID:     app.InvoiceID,
			AmountApplied: app.AmountApplied,
			CreatedAt:     app.CreatedAt,
		}
	}
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		PaymentNumber:   p.PaymentNumber,
		CustomerID:      p.CustomerID,
		PaymentDate:     FormatDate(p.PaymentDate),
		Amount:          p.Amount,
		UnappliedAmount: p.UnappliedAmount,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Memo:            p.Memo,
		Applications:    appResponses,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToPaymentResponses converts a slice of domain.Payment to response DTOs.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPaymentResponse(&p, nil)
	}
	return responses
}

// BillPaymentApplicationRequest distributes part of a bill payment to one bill.
type BillPaymentApplicationRequest struct {
	BillID        string          `json:"billID" binding:"required"`
	AmountApplied decimal.Decimal `json:"amountApplied" binding:"dgt0"`
}

// CreateBillPaymentRequest defines the data needed to record a vendor payment.
type CreateBillPaymentRequest struct {
	PaymentNumber   string                          `json:"paymentNumber" binding:"required"`
	VendorID        string                          `json:"vendorID" binding:"required"`
	PaymentDate     string                          `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Amount          decimal.Decimal                 `json:"amount" binding:"dgt0"`
	PaymentMethod   string                          `json:"paymentMethod" binding:"required"`
	ReferenceNumber string                          `json:"referenceNumber"`
	Memo            string                          `json:"memo"`
	Applications    []BillPaymentApplicationRequest `json:"applications" binding:"omitempty,dive"`
}

// BillPaymentApplicationResponse defines the data returned for one bill
// payment application.
type BillPaymentApplicationResponse struct {
	ApplicationID string          `json:"applicationID"`
	BillID        string          `json:"billID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BillPaymentResponse defines the data returned for a bill payment.
type BillPaymentResponse struct {
	BillPaymentID   string                           `json:"billPaymentID"`
	PaymentNumber   string                           `json:"paymentNumber"`
	VendorID        string                           `json:"vendorID"`
	PaymentDate     string                           `json:"paymentDate"`
	Amount          decimal.Decimal                  `json:"amount"`
	UnappliedAmount decimal.Decimal                  `json:"unappliedAmount"`
	PaymentMethod   string                           `json:"paymentMethod"`
	ReferenceNumber string                           `json:"referenceNumber,omitempty"`
	Memo            string                           `json:"memo,omitempty"`
	Applications    []BillPaymentApplicationResponse `json:"applications,omitempty"`
	CreatedAt       time.Time                        `json:"createdAt"`
	UpdatedAt       time.Time                        `json:"updatedAt"`
}

// ListBillPaymentsResponse wraps the list of bill payments.
type ListBillPaymentsResponse struct {
	BillPayments []BillPaymentResponse `json:"billPayments"`
}

// ToBillPaymentResponse converts a domain.BillPayment and its applications to a DTO.
func ToBillPaymentResponse(p *domain.BillPayment, apps []domain.BillPaymentApplication) BillPaymentResponse {
	appResponses := make([]BillPaymentApplicationResponse, len(apps))
	for i, app := range apps {
		appResponses[i] = BillPaymentApplicationResponse{
			ApplicationID: app.ApplicationID,
			BillID:        app.BillID,
			AmountApplied: app.AmountApplied,
			CreatedAt:     app.CreatedAt,
		}
	}
	return BillPaymentResponse{
		BillPaymentID:   p.BillPaymentID,
		PaymentNumber:   p.PaymentNumber,
		VendorID:        p.VendorID,
		PaymentDate:     FormatDate(p.PaymentDate),
		Amount:          p.Amount,
		UnappliedAmount: p.UnappliedAmount,
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Memo:            p.Memo,
		Applications:    appResponses,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToBillPaymentResponses converts a slice of domain.BillPayment to response DTOs.
func ToBillPaymentResponses(payments []domain.BillPayment) []BillPaymentResponse {
	responses := make([]BillPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToBillPaymentResponse(&p, nil)
	}
	return responses
}
