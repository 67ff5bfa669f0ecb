package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGenerateInvoiceCommandIsNotConstructed = errors.New(
	"GenerateInvoiceCommand must be created via NewGenerateInvoiceCommand constructor",
)

// GenerateInvoiceCommand returns the parcel's invoice, creating it on first request.
type GenerateInvoiceCommand struct {
	parcelID kernel.UUID
	actor    kernel.Actor
	notes    string

	guard guard.ConstructorGuard
}

func NewGenerateInvoiceCommand(parcelID kernel.UUID, actor kernel.Actor, notes string) (GenerateInvoiceCommand, error) {
	if err := errors.Join(parcelID.Validate(), actor.Validate()); err != nil {
		return GenerateInvoiceCommand{}, err
	}
	return GenerateInvoiceCommand{
		parcelID: parcelID,
		actor:    actor,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrGenerateInvoiceCommandIsNotConstructed)
}

func (c GenerateInvoiceCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c GenerateInvoiceCommand) Actor() kernel.Actor   { return c.actor }
func (c GenerateInvoiceCommand) Notes() string         { return c.notes }
