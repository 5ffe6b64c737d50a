package repositories

// RepositoryProvider holds instances of all the repositories, wired once at
// startup and handed to the service layer.
type RepositoryProvider struct {
	AccountRepo     AccountReader
	TransactionRepo TransactionRepositoryFacade
	InvoiceRepo     InvoiceRepositoryFacade
	BillRepo        BillRepositoryFacade
	PaymentRepo     PaymentRepositoryFacade
	BillPaymentRepo BillPaymentRepositoryFacade
	ReportingRepo   ReportingRepository
	ContactRepo     ContactReader
}
