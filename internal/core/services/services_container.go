package services

import (
	"github.com/ledgerkeep/ledgerkeep/internal/core/ports"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/config"
)

// NewServiceContainer creates and wires all application services.
// cache may be nil when no Redis address is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache ports.Cache) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo, cache, cfg.EntityCacheTTL),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo),
		Invoice:     NewInvoiceService(repos.InvoiceRepo, repos.ContactRepo, cache, cfg.EntityCacheTTL),
		Bill:        NewBillService(repos.BillRepo, repos.ContactRepo, cache, cfg.EntityCacheTTL),
		Payment:     NewPaymentService(repos.PaymentRepo, repos.BillPaymentRepo, repos.ContactRepo, cache),
		Reporting:   NewReportingService(repos.ReportingRepo, cache, cfg.ReportCacheTTL, cfg.PnLCacheTTL),
	}
}
