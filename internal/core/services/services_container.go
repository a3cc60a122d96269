package services

import (
	portsrepo "github.com/SscSPs/transaction_records_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_records_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ...TransactionServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(repos.TransactionRepo, opts...),
	}
}
