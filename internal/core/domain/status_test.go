package domain_test

import (
	"testing"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	all := []domain.TransactionStatus{
		domain.TransactionDraft,
		domain.TransactionPosted,
		domain.TransactionVoid,
	}

	allowed := map[domain.TransactionStatus][]domain.TransactionStatus{
		domain.TransactionDraft:  {domain.TransactionPosted, domain.TransactionVoid},
		domain.TransactionPosted: {domain.TransactionVoid},
		domain.TransactionVoid:   {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestTransactionStatus_VoidIsTerminal(t *testing.T) {
	for _, to := range []domain.TransactionStatus{
		domain.TransactionDraft,
		domain.TransactionPosted,
		domain.TransactionVoid,
	} {
		assert.False(t, domain.TransactionVoid.CanTransitionTo(to))
	}
}

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	all := []domain.InvoiceStatus{
		domain.InvoiceDraft,
		domain.InvoiceSent,
		domain.InvoicePaid,
		domain.InvoicePartial,
		domain.InvoiceOverdue,
		domain.InvoiceVoid,
	}

	allowed := map[domain.InvoiceStatus][]domain.InvoiceStatus{
		domain.InvoiceDraft:   all, // Draft may move anywhere
		domain.InvoiceSent:    {domain.InvoicePartial, domain.InvoicePaid, domain.InvoiceOverdue, domain.InvoiceVoid},
		domain.InvoicePartial: {domain.InvoicePaid, domain.InvoiceOverdue, domain.InvoiceVoid},
		domain.InvoiceOverdue: {domain.InvoicePartial, domain.InvoicePaid, domain.InvoiceVoid},
		domain.InvoicePaid:    {domain.InvoiceVoid},
		domain.InvoiceVoid:    {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestBillStatus_CanTransitionTo(t *testing.T) {
	nonVoid := []domain.BillStatus{domain.BillOpen, domain.BillPartial, domain.BillPaid}

	for _, from := range nonVoid {
		assert.True(t, from.CanTransitionTo(domain.BillVoid), "void from %s", from)
	}
	for _, to := range append(nonVoid, domain.BillVoid) {
		assert.False(t, domain.BillVoid.CanTransitionTo(to), "void is terminal")
	}
}

func TestAccountType_NormalBalanceIsDebit(t *testing.T) {
	assert.True(t, domain.Asset.NormalBalanceIsDebit())
	assert.True(t, domain.Expense.NormalBalanceIsDebit())
	assert.False(t, domain.Liability.NormalBalanceIsDebit())
	assert.False(t, domain.Equity.NormalBalanceIsDebit())
	assert.False(t, domain.Revenue.NormalBalanceIsDebit())
}
