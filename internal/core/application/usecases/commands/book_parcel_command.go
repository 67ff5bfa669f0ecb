package commands

import (
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrBookParcelCommandIsNotConstructed = errors.New(
	"BookParcelCommand must be created via NewBookParcelCommand constructor",
)

// Address is the raw postal input of a booking request.
type Address struct {
	Address string
	City    string
	State   string
	Country string
	ZipCode string
}

// BookingRequest is the raw input of a booking.
type BookingRequest struct {
	Description         string
	Weight              decimal.Decimal
	DeclaredValue       decimal.Decimal
	ReceiverName        string
	ReceiverPhone       string
	ReceiverEmail       string
	Pickup              Address
	Delivery            Address
	Priority            string
	SpecialInstructions string
}

// BookParcelCommand books a new parcel on behalf of the sender.
//
// Example:
//
//	cmd, err := NewBookParcelCommand(senderID, BookingRequest{
//	    Description: "Books",
//	    Weight:      decimal.RequireFromString("2.0"),
//	    ...
//	})
//	if err != nil {
//	    return err // one field error per invalid input, joined
//	}
//	p, err := handler.Handle(ctx, cmd)
type BookParcelCommand struct { //nolint:recvcheck //using for validation
	senderID            kernel.UUID
	recipient           parcel.Recipient
	contents            parcel.Contents
	pickup              kernel.Location
	delivery            kernel.Location
	priority            parcel.Priority
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewBookParcelCommand validates every field of the request and reports all
// failures at once. Location failures are prefixed with "pickup" or "delivery".
func NewBookParcelCommand(senderID kernel.UUID, req BookingRequest) (BookParcelCommand, error) {
	cmd := BookParcelCommand{
		specialInstructions: req.SpecialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	var recipientErr, contentsErr, pickupErr, deliveryErr, priorityErr error
	cmd.recipient, recipientErr = parcel.NewRecipient(req.ReceiverName, req.ReceiverPhone, req.ReceiverEmail)
	cmd.contents, contentsErr = parcel.NewContents(req.Description, req.Weight, req.DeclaredValue)
	cmd.pickup, pickupErr = newLocation(req.Pickup)
	if pickupErr != nil {
		pickupErr = fmt.Errorf("pickup: %w", pickupErr)
	}
	cmd.delivery, deliveryErr = newLocation(req.Delivery)
	if deliveryErr != nil {
		deliveryErr = fmt.Errorf("delivery: %w", deliveryErr)
	}
	cmd.priority, priorityErr = parcel.ParsePriority(req.Priority)

	if err := errors.Join(
		senderID.Validate(),
		recipientErr,
		contentsErr,
		pickupErr,
		deliveryErr,
		priorityErr,
	); err != nil {
		return BookParcelCommand{}, err
	}

	cmd.senderID = senderID
	return cmd, nil
}

func (c BookParcelCommand) Validate() error {
	return c.guard.Validate(ErrBookParcelCommandIsNotConstructed)
}

func (c BookParcelCommand) SenderID() kernel.UUID       { return c.senderID }
func (c BookParcelCommand) Recipient() parcel.Recipient { return c.recipient }
func (c BookParcelCommand) Contents() parcel.Contents   { return c.contents }
func (c BookParcelCommand) Pickup() kernel.Location     { return c.pickup }
func (c BookParcelCommand) Delivery() kernel.Location   { return c.delivery }
func (c BookParcelCommand) Priority() parcel.Priority   { return c.priority }
func (c BookParcelCommand) SpecialInstructions() string { return c.specialInstructions }

func newLocation(a Address) (kernel.Location, error) {
	return kernel.NewLocation(a.Address, a.City, a.State, a.Country, a.ZipCode)
}
