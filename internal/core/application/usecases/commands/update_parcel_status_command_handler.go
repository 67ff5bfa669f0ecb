package commands

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/services"
)

// UpdateParcelStatusCommandHandler changes a parcel's status and appends the matching
// ledger entry atomically. The parcel row is locked for the duration of the transaction.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
	access     services.AccessGuard
	rule       parcel.TransitionRule
	clock      Clock
}

// NewUpdateParcelStatusCommandHandler builds the handler; a nil rule means parcel.StrictTransitions.
func NewUpdateParcelStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	access services.AccessGuard,
	rule parcel.TransitionRule,
) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		access:     access,
		rule:       rule,
	}
}

func (h UpdateParcelStatusCommandHandler) WithClock(clock Clock) UpdateParcelStatusCommandHandler {
	h.clock = clock
	return h
}

func (h UpdateParcelStatusCommandHandler) Handle(ctx context.Context, cmd UpdateParcelStatusCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	return changeStatus(ctx, h.uowFactory.Create(), h.access, statusChange{
		parcelID:    cmd.ParcelID(),
		status:      cmd.Status(),
		actor:       cmd.Actor(),
		location:    tracking.StatusUpdateLocation,
		description: tracking.StatusUpdateDescription(cmd.Status()),
		at:          now,
		rule:        h.rule,
	})
}

type statusChange struct {
	parcelID    kernel.UUID
	status      parcel.Status
	actor       kernel.Actor
	location    string
	description string
	at          time.Time
	// notBefore rejects timestamps older than the parcel's last change
	notBefore bool
	rule      parcel.TransitionRule
}

// changeStatus is shared by the status update and tracking update commands.
func changeStatus(
	ctx context.Context,
	uow ShipmentUoW,
	access services.AccessGuard,
	change statusChange,
) (*parcel.Parcel, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.GetForUpdate(ctx, change.parcelID)
	if err != nil {
		return nil, err
	}

	if err = access.Authorize(change.actor, services.ResourceTracking, p, services.ActionModify); err != nil {
		return nil, err
	}

	if change.notBefore {
		if err = checkTimestamp(change.at, p.UpdatedAt()); err != nil {
			return nil, err
		}
	}

	actorID := change.actor.ID()
	if err = p.ChangeStatus(change.status, change.at, change.rule, &actorID); err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	entry, err := tracking.NewEntry(p, change.location, change.description, change.at, &actorID)
	if err != nil {
		return nil, err
	}
	if err = uow.TrackingRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
