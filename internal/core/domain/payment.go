package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents cash received from a customer. The conservation
// invariant holds at all times: Amount == UnappliedAmount + sum of all
// application amounts.
type Payment struct {
	PaymentID       string          `json:"paymentID"` // Primary Key (UUID)
	PaymentNumber   string          `json:"paymentNumber"`
	CustomerID      string          `json:"customerID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	Amount          decimal.Decimal `json:"amount"`
	UnappliedAmount decimal.Decimal `json:"unappliedAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Memo            string          `json:"memo"`
	AuditFields
}

// PaymentApplication is an immutable join row recording one distribution of
// a payment against an invoice. Creation is the only operation.
type PaymentApplication struct {
	ApplicationID string          `json:"applicationID"` // Primary Key (UUID)
	PaymentID     string          `json:"paymentID"`
	InvoiceID     string          `json:"invoiceID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// BillPayment represents cash paid out to a vendor, mirroring Payment.
type BillPayment struct {
	BillPaymentID   string          `json:"billPaymentID"` // Primary Key (UUID)
	PaymentNumber   string          `json:"paymentNumber"`
	VendorID        string          `json:"vendorID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	Amount          decimal.Decimal `json:"amount"`
	UnappliedAmount decimal.Decimal `json:"unappliedAmount"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Memo            string          `json:"memo"`
	AuditFields
}

// BillPaymentApplication records one distribution of a bill payment against
// a bill.
type BillPaymentApplication struct {
	ApplicationID string          `json:"applicationID"` // Primary Key (UUID)
	BillPaymentID string          `json:"billPaymentID"`
	BillID        string          `json:"billID"`
	AmountApplied decimal.Decimal `json:"amountApplied"`
	CreatedAt     time.Time       `json:"createdAt"`
}
