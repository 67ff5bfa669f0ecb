package commands

import (
	"context"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/services"
)

// UpdatePaymentStatusCommandHandler applies a payment status change. Only staff may
// update payments; the invoice row is locked while the change is applied.
type UpdatePaymentStatusCommandHandler struct {
	uowFactory BillingUoWFactory
	access     services.AccessGuard
	rule       invoice.PaymentRule
	clock      Clock
}

// NewUpdatePaymentStatusCommandHandler builds the handler; a nil rule means invoice.StrictPayments.
func NewUpdatePaymentStatusCommandHandler(
	uowFactory BillingUoWFactory,
	access services.AccessGuard,
	rule invoice.PaymentRule,
) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{
		uowFactory: uowFactory,
		access:     access,
		rule:       rule,
	}
}

func (h UpdatePaymentStatusCommandHandler) WithClock(clock Clock) UpdatePaymentStatusCommandHandler {
	h.clock = clock
	return h
}

func (h UpdatePaymentStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()
	inv, err := invoiceRepo.GetForUpdate(ctx, cmd.InvoiceID())
	if err != nil {
		return nil, err
	}

	owner, err := uow.ParcelRepository().Get(ctx, inv.ParcelID())
	if err != nil {
		return nil, err
	}
	if err = h.access.Authorize(cmd.Actor(), services.ResourceInvoice, owner, services.ActionModify); err != nil {
		return nil, err
	}

	if err = inv.UpdatePayment(cmd.Status(), cmd.Method(), h.clock.now(), h.rule); err != nil {
		return nil, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
