package parcel

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
)

// StatusChanged is raised whenever a parcel enters a status, including the initial
// PENDING at booking (From is empty then). ChangedBy is nil for system changes.
type StatusChanged struct {
	ParcelID       kernel.UUID
	TrackingNumber string
	From           Status
	To             Status
	At             time.Time
	ChangedBy      *kernel.UUID
}
