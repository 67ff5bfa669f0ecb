package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned after Begin
// are bound to the transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit commits the transaction and then publishes the domain events of
	// aggregates saved within it.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	TrackingRepository() TrackingRepository
	InvoiceRepository() InvoiceRepository
	AccountRepository() AccountRepository
}
