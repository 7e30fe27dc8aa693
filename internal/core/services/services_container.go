package services

import (
	portsrepo "github.com/mfoukoue/etude_compta_app/internal/core/ports/repositories"
	portssvc "github.com/mfoukoue/etude_compta_app/internal/core/ports/services"
)

// NewServiceContainer wires every service from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	balance := NewBalanceCalculator(repos.EntryRepo)
	return &portssvc.ServiceContainer{
		Account:        NewAccountService(repos.AccountRepo),
		Journal:        NewJournalService(repos.JournalRepo),
		Posting:        NewPostingService(repos.AccountRepo, repos.JournalRepo, repos.EntryRepo),
		Balance:        balance,
		Reporting:      NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.EntryRepo, balance),
		Reconciliation: NewReconciliationService(repos.AccountRepo, repos.EntryRepo),
	}
}
