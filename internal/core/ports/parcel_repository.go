// Package ports defines the contracts between the parcel core and its infrastructure:
// repositories, the unit of work, event publishing and caching.
package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelRepository is the transactional write side for parcel aggregates.
type ParcelRepository interface {
	// Add persists a newly booked parcel. A duplicate tracking number yields an errs.ConflictError.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists a status change of an existing parcel.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get returns the parcel or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate is Get holding a row lock until the transaction ends, serializing
	// concurrent status writers on the same parcel.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
}

// ParcelReader serves the read-only parcel queries. Lists are ordered newest booking first.
type ParcelReader interface {
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error)
	ListBySender(ctx context.Context, senderID kernel.UUID) ([]*parcel.Parcel, error)
	ListByReceiver(ctx context.Context, receiverID kernel.UUID) ([]*parcel.Parcel, error)
	// ListByParty returns parcels where the user is sender or receiver.
	ListByParty(ctx context.Context, userID kernel.UUID) ([]*parcel.Parcel, error)
	ListByStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error)
	// ListCreatedBetween filters on createdAt, both bounds inclusive.
	ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*parcel.Parcel, error)
	ListByStatusCreatedBetween(ctx context.Context, status parcel.Status, from, to time.Time) ([]*parcel.Parcel, error)
	CountByStatus(ctx context.Context, status parcel.Status) (int64, error)
	// ListOverdue returns parcels whose estimated delivery is before now and whose
	// status is neither DELIVERED nor CANCELLED.
	ListOverdue(ctx context.Context, now time.Time) ([]*parcel.Parcel, error)
	ListAll(ctx context.Context) ([]*parcel.Parcel, error)
}
