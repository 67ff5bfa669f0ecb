package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/account"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/tracking"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BookParcelCommandHandler creates the parcel, resolves its receiver account and
// writes the initial PENDING ledger entry in one transaction.
//
// A uniqueness conflict (tracking number, receiver email) re-runs the whole booking
// with a fresh transaction and a new tracking number, up to three attempts.
type BookParcelCommandHandler struct {
	uowFactory BookingUoWFactory
	calculator services.BillingCalculator
	numbers    NumberIssuer
	clock      Clock
}

func NewBookParcelCommandHandler(
	uowFactory BookingUoWFactory,
	calculator services.BillingCalculator,
	numbers NumberIssuer,
) BookParcelCommandHandler {
	return BookParcelCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		numbers:    numbers,
	}
}

// WithClock returns a copy of the handler reading time from clock.
func (h BookParcelCommandHandler) WithClock(clock Clock) BookParcelCommandHandler {
	h.clock = clock
	return h
}

func (h BookParcelCommandHandler) Handle(ctx context.Context, cmd BookParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.now()
	cost, err := h.calculator.ShippingCost(cmd.Contents().Weight(), cmd.Priority())
	if err != nil {
		return nil, err
	}
	eta, err := h.calculator.EstimatedDelivery(cmd.Priority(), now)
	if err != nil {
		return nil, err
	}

	var p *parcel.Parcel
	for attempt := 1; ; attempt++ {
		p, err = h.book(ctx, cmd, cost, eta, now)
		if err == nil || !errors.Is(err, errs.ErrConflict) || attempt == maxAttempts {
			return p, err
		}
	}
}

func (h BookParcelCommandHandler) book(
	ctx context.Context,
	cmd BookParcelCommand,
	cost decimal.Decimal,
	eta time.Time,
	now time.Time,
) (*parcel.Parcel, error) {
	trackingNumber, err := h.numbers.TrackingNumber()
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	receiverID, err := resolveReceiver(ctx, uow.AccountRepository(), cmd.Recipient(), now)
	if err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(parcel.Booking{
		ID:                  kernel.NewUUID(),
		TrackingNumber:      trackingNumber,
		SenderID:            cmd.SenderID(),
		ReceiverID:          receiverID,
		Recipient:           cmd.Recipient(),
		Contents:            cmd.Contents(),
		Pickup:              cmd.Pickup(),
		Delivery:            cmd.Delivery(),
		Priority:            cmd.Priority(),
		SpecialInstructions: cmd.SpecialInstructions(),
		ShippingCost:        cost,
		EstimatedDelivery:   eta,
		BookedAt:            now,
	})
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	sender := cmd.SenderID()
	entry, err := tracking.NewEntry(p, tracking.BookingLocation, tracking.BookingDescription, now, &sender)
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

// resolveReceiver reuses the account registered under the recipient's email, or
// materialises an unclaimed CUSTOMER account without any credential.
func resolveReceiver(
	ctx context.Context,
	accounts ports.AccountRepository,
	recipient parcel.Recipient,
	now time.Time,
) (kernel.UUID, error) {
	if email := account.NormalizeEmail(recipient.Email()); email != "" {
		existing, err := accounts.FindByEmail(ctx, email)
		if err == nil {
			return existing.ID(), nil
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return kernel.UUID{}, err
		}
	}

	first, last := recipient.SplitName()
	created, err := account.NewUnclaimedCustomer(kernel.NewUUID(), first, last, recipient.Phone(), recipient.Email(), now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = accounts.Add(ctx, created); err != nil {
		return kernel.UUID{}, err
	}
	return created.ID(), nil
}
