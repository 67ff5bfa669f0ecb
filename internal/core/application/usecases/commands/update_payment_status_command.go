package commands

import (
	"errors"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand records a payment status change of an invoice and,
// optionally, the payment method.
type UpdatePaymentStatusCommand struct {
	invoiceID kernel.UUID
	status    invoice.PaymentStatus
	method    *invoice.PaymentMethod
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

// NewUpdatePaymentStatusCommand validates the input. An empty method leaves the
// recorded method unchanged.
func NewUpdatePaymentStatusCommand(invoiceID kernel.UUID, status, method string, actor kernel.Actor) (UpdatePaymentStatusCommand, error) {
	st, statusErr := invoice.ParsePaymentStatus(status)

	var pm *invoice.PaymentMethod
	var methodErr error
	if method != "" {
		var m invoice.PaymentMethod
		if m, methodErr = invoice.ParsePaymentMethod(method); methodErr == nil {
			pm = &m
		}
	}

	if err := errors.Join(invoiceID.Validate(), statusErr, methodErr, actor.Validate()); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	return UpdatePaymentStatusCommand{
		invoiceID: invoiceID,
		status:    st,
		method:    pm,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

func (c UpdatePaymentStatusCommand) InvoiceID() kernel.UUID         { return c.invoiceID }
func (c UpdatePaymentStatusCommand) Status() invoice.PaymentStatus  { return c.status }
func (c UpdatePaymentStatusCommand) Method() *invoice.PaymentMethod { return c.method }
func (c UpdatePaymentStatusCommand) Actor() kernel.Actor            { return c.actor }
