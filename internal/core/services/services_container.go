package services

import (
	portsrepo "github.com/SscSPs/milk_supply_chain/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/milk_supply_chain/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share one ledger store so that their units of work serialize against each other.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Registry: NewRegistryService(repos.LedgerRepo, options...),
		Batch:    NewBatchService(repos.LedgerRepo, options...),
		Balance:  NewBalanceService(repos.LedgerRepo, options...),
		Transfer: NewTransferService(repos.LedgerRepo, options...),
	}
}
