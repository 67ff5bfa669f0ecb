package ports

import (
	"context"

	"parcels/internal/core/domain/model/parcel"
)

// EventPublisher delivers parcel status events after their transaction committed.
// Delivery is best effort; a failure never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...parcel.StatusChanged) error
}

// TrackingCache stores serialized public tracking views keyed by tracking number.
// A miss is reported as found == false with a nil error.
type TrackingCache interface {
	Get(ctx context.Context, trackingNumber string) (payload []byte, found bool, err error)
	Set(ctx context.Context, trackingNumber string, payload []byte) error
	Invalidate(ctx context.Context, trackingNumber string) error
}
