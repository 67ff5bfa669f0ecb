// Package commands contains the operations that change parcel, tracking and invoice
// state. Every command is validated on construction and handled inside one unit of work.
package commands

import (
	"context"
	"time"

	"parcels/internal/core/ports"
)

// maxAttempts bounds how often a command is re-run after losing a uniqueness race.
const maxAttempts = 3

// Unit of Work interfaces narrowed to what each handler needs.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// ShipmentUoW pairs parcel status writes with ledger appends.
	ShipmentUoW interface {
		TxManager
		ParcelRepoFactory
		TrackingRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// BookingUoW additionally resolves or creates the receiver account.
	BookingUoW interface {
		ShipmentUoW
		AccountRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	// BillingUoW reads the owning parcel and writes its invoice.
	BillingUoW interface {
		TxManager
		ParcelRepoFactory
		InvoiceRepoFactory
	}

	BillingUoWFactory interface {
		Create() BillingUoW
	}
)

// NumberIssuer issues tracking and invoice numbers.
type NumberIssuer interface {
	TrackingNumber() (string, error)
	InvoiceNumber() (string, error)
}

// Clock returns the current time; handlers default to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
