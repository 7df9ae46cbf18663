package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This lets the use case layer own atomicity boundaries (e.g. account +
// default folder on registration) without depending on a specific DB driver.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise it is committed. All repositories obtained from the factory
	// use the same underlying transaction.
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one transaction.
type RepositoryFactory interface {
	// AccountRepo returns an AccountRepository bound to the current transaction.
	AccountRepo() AccountRepository

	// FolderRepo returns a FolderRepository bound to the current transaction.
	FolderRepo() FolderRepository

	// SessionRepo returns a RefreshSessionRepository bound to the current transaction.
	SessionRepo() RefreshSessionRepository
}
