package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	billRepo := newPgxBillRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	billPaymentRepo := newPgxBillPaymentRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	contactRepo := newPgxContactRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		InvoiceRepo:     invoiceRepo,
		BillRepo:        billRepo,
		PaymentRepo:     paymentRepo,
		BillPaymentRepo: billPaymentRepo,
		ReportingRepo:   reportingRepo,
		ContactRepo:     contactRepo,
	}
}
