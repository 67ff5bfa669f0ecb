package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

// AddTrackingUpdateCommandHandler applies a staff tracking update: the status change
// and a ledger entry with the caller's location and description, atomically.
type AddTrackingUpdateCommandHandler struct {
	uowFactory ShipmentUoWFactory
	access     services.AccessGuard
	rule       parcel.TransitionRule
	clock      Clock
}

func NewAddTrackingUpdateCommandHandler(
	uowFactory ShipmentUoWFactory,
	access services.AccessGuard,
	rule parcel.TransitionRule,
) AddTrackingUpdateCommandHandler {
	return AddTrackingUpdateCommandHandler{
		uowFactory: uowFactory,
		access:     access,
		rule:       rule,
	}
}

func (h AddTrackingUpdateCommandHandler) WithClock(clock Clock) AddTrackingUpdateCommandHandler {
	h.clock = clock
	return h
}

func (h AddTrackingUpdateCommandHandler) Handle(ctx context.Context, cmd AddTrackingUpdateCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	at := cmd.Timestamp()
	switch {
	case at.IsZero():
		at = now
	case at.After(now):
		return nil, errs.NewValueIsInvalidErrorWithCause("timestamp", errors.New("timestamp is in the future"))
	}

	return changeStatus(ctx, h.uowFactory.Create(), h.access, statusChange{
		parcelID:    cmd.ParcelID(),
		status:      cmd.Status(),
		actor:       cmd.Actor(),
		location:    cmd.Location(),
		description: cmd.Description(),
		at:          at,
		notBefore:   true,
		rule:        h.rule,
	})
}
