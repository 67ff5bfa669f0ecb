// Package tracking holds the append-only ledger entry recorded for every parcel status change.
package tracking

import (
	"errors"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// Location and description written by the booking and status-update flows.
const (
	BookingLocation      = "Parcel Service Center"
	BookingDescription   = "Parcel booking confirmed"
	StatusUpdateLocation = "System Update"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// StatusUpdateDescription is the narrative recorded by a plain status update.
func StatusUpdateDescription(s parcel.Status) string {
	return "Status updated to " + s.String()
}

// Entry is one immutable ledger record. Its status is copied from the parcel at
// construction time, so an entry always agrees with the parcel state it follows.
type Entry struct {
	id          kernel.UUID
	parcelID    kernel.UUID
	status      parcel.Status
	location    string
	description string
	timestamp   time.Time
	updatedBy   *kernel.UUID
	seq         int64

	isConstructed bool
}

// NewEntry records the current status of p. A zero timestamp means now; a nil
// updatedBy means the change was made by the system.
func NewEntry(p *parcel.Parcel, location, description string, timestamp time.Time, updatedBy *kernel.UUID) (*Entry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	location = strings.TrimSpace(location)
	description = strings.TrimSpace(description)
	var locErr, descErr error
	if location == "" {
		locErr = errs.NewValueIsRequiredError("location")
	}
	if description == "" {
		descErr = errs.NewValueIsRequiredError("description")
	}
	if err := errors.Join(locErr, descErr); err != nil {
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return &Entry{
		id:            kernel.NewUUID(),
		parcelID:      p.ID(),
		status:        p.Status(),
		location:      location,
		description:   description,
		timestamp:     timestamp,
		updatedBy:     updatedBy,
		isConstructed: true,
	}, nil
}

// RestoreEntry rebuilds an entry loaded from storage. seq is the store-assigned
// insertion order used to break timestamp ties.
func RestoreEntry(
	id, parcelID kernel.UUID,
	status parcel.Status,
	location, description string,
	timestamp time.Time,
	updatedBy *kernel.UUID,
	seq int64,
) (*Entry, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	return &Entry{
		id:            id,
		parcelID:      parcelID,
		status:        status,
		location:      location,
		description:   description,
		timestamp:     timestamp,
		updatedBy:     updatedBy,
		seq:           seq,
		isConstructed: true,
	}, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID          { return e.id }
func (e *Entry) ParcelID() kernel.UUID    { return e.parcelID }
func (e *Entry) Status() parcel.Status    { return e.status }
func (e *Entry) Location() string         { return e.location }
func (e *Entry) Description() string      { return e.description }
func (e *Entry) Timestamp() time.Time     { return e.timestamp }
func (e *Entry) UpdatedBy() *kernel.UUID  { return e.updatedBy }
func (e *Entry) Seq() int64               { return e.seq }

// IsSystem reports whether no actor is attributed to the entry.
func (e *Entry) IsSystem() bool {
	return e.updatedBy == nil
}

// Newer reports whether e sorts before other in newest-first ledger order:
// later timestamp first, then higher insertion sequence.
func (e *Entry) Newer(other *Entry) bool {
	if !e.timestamp.Equal(other.timestamp) {
		return e.timestamp.After(other.timestamp)
	}
	return e.seq > other.seq
}
