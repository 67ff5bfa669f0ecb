package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
	"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
)

// UpdateParcelStatusCommand moves a parcel to a new status with the standard
// "System Update" ledger narrative.
type UpdateParcelStatusCommand struct {
	parcelID kernel.UUID
	status   parcel.Status
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewUpdateParcelStatusCommand(parcelID kernel.UUID, status string, actor kernel.Actor) (UpdateParcelStatusCommand, error) {
	st, statusErr := parcel.ParseStatus(status)
	if err := errors.Join(parcelID.Validate(), statusErr, actor.Validate()); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return UpdateParcelStatusCommand{
		parcelID: parcelID,
		status:   st,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c UpdateParcelStatusCommand) Status() parcel.Status { return c.status }
func (c UpdateParcelStatusCommand) Actor() kernel.Actor   { return c.actor }
