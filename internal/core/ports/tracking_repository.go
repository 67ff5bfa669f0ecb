package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/tracking"
)

// TrackingRepository appends ledger entries. There is no update or delete.
type TrackingRepository interface {
	// Append stores the entry. An unknown parcel yields an errs.ObjectNotFoundError.
	Append(ctx context.Context, entry *tracking.Entry) error
}

// TrackingReader returns ledger history newest first: timestamp descending, ties
// broken by insertion order descending.
type TrackingReader interface {
	History(ctx context.Context, parcelID kernel.UUID) ([]*tracking.Entry, error)
	// HistoryOf returns the merged history of several parcels in the same order.
	HistoryOf(ctx context.Context, parcelIDs []kernel.UUID) ([]*tracking.Entry, error)
}
