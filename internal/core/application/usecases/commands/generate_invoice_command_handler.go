package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"
)

// GenerateInvoiceCommandHandler is the idempotent read-or-create of a parcel's invoice.
//
// When two requests race, the store's unique constraint on the parcel rejects the
// second insert with a conflict; the loser then re-reads in a fresh transaction and
// returns the winner's invoice.
type GenerateInvoiceCommandHandler struct {
	uowFactory BillingUoWFactory
	calculator services.BillingCalculator
	numbers    NumberIssuer
	access     services.AccessGuard
	clock      Clock
}

func NewGenerateInvoiceCommandHandler(
	uowFactory BillingUoWFactory,
	calculator services.BillingCalculator,
	numbers NumberIssuer,
	access services.AccessGuard,
) GenerateInvoiceCommandHandler {
	return GenerateInvoiceCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		numbers:    numbers,
		access:     access,
	}
}

func (h GenerateInvoiceCommandHandler) WithClock(clock Clock) GenerateInvoiceCommandHandler {
	h.clock = clock
	return h
}

func (h GenerateInvoiceCommandHandler) Handle(ctx context.Context, cmd GenerateInvoiceCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		inv, err := h.readOrCreate(ctx, cmd)
		if err == nil || !errors.Is(err, errs.ErrConflict) || attempt == maxAttempts {
			return inv, err
		}
	}
}

func (h GenerateInvoiceCommandHandler) readOrCreate(ctx context.Context, cmd GenerateInvoiceCommand) (*invoice.Invoice, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	if err = h.access.Authorize(cmd.Actor(), services.ResourceInvoice, p, services.ActionBilling); err != nil {
		return nil, err
	}

	invoiceRepo := uow.InvoiceRepository()
	existing, err := invoiceRepo.GetByParcel(ctx, p.ID())
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	amounts, err := h.calculator.InvoiceAmounts(p.ShippingCost())
	if err != nil {
		return nil, err
	}
	number, err := h.numbers.InvoiceNumber()
	if err != nil {
		return nil, err
	}

	inv, err := invoice.NewInvoice(kernel.NewUUID(), number, p.ID(), amounts, h.clock.now(), cmd.Notes())
	if err != nil {
		return nil, err
	}

	if err = invoiceRepo.Add(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
