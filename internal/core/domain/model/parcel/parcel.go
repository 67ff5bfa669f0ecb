package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// TrackingNumberPrefix starts every tracking number.
const TrackingNumberPrefix = "TRK"

var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

// Booking carries everything needed to create a parcel. Pricing and the delivery
// estimate are computed by the caller.
type Booking struct {
	ID                  kernel.UUID
	TrackingNumber      string
	SenderID            kernel.UUID
	ReceiverID          kernel.UUID
	Recipient           Recipient
	Contents            Contents
	Pickup              kernel.Location
	Delivery            kernel.Location
	Priority            Priority
	SpecialInstructions string
	ShippingCost        decimal.Decimal
	EstimatedDelivery   time.Time
	BookedAt            time.Time
}

// Parcel is the aggregate root of a shipment.
//
// Invariants:
//   - trackingNumber is assigned at booking and never changes
//   - shippingCost is positive and fixed at booking
//   - status only changes through ChangeStatus
//   - actualDelivery is set once, the first time the parcel enters DELIVERED
type Parcel struct {
	id                  kernel.UUID
	trackingNumber      string
	senderID            kernel.UUID
	receiverID          kernel.UUID
	recipient           Recipient
	contents            Contents
	pickup              kernel.Location
	delivery            kernel.Location
	status              Status
	priority            Priority
	specialInstructions string
	shippingCost        decimal.Decimal
	createdAt           time.Time
	updatedAt           time.Time
	estimatedDelivery   time.Time
	actualDelivery      *time.Time

	events        []StatusChanged
	isConstructed bool
}

// NewParcel creates a parcel in PENDING status and records the initial StatusChanged
// event attributed to the sender.
func NewParcel(b Booking) (*Parcel, error) {
	if b.Priority == "" {
		b.Priority = PriorityStandard
	}

	p := &Parcel{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(b.ID),
		p.setTrackingNumber(b.TrackingNumber),
		p.setParties(b.SenderID, b.ReceiverID),
		p.setRecipient(b.Recipient),
		p.setContents(b.Contents),
		p.setRoute(b.Pickup, b.Delivery),
		p.setPriority(b.Priority),
		p.setShippingCost(b.ShippingCost),
	); err != nil {
		return nil, err
	}

	if b.BookedAt.IsZero() {
		b.BookedAt = time.Now()
	}
	p.specialInstructions = strings.TrimSpace(b.SpecialInstructions)
	p.createdAt = b.BookedAt
	p.updatedAt = b.BookedAt
	p.estimatedDelivery = b.EstimatedDelivery

	sender := p.senderID
	p.raise(StatusChanged{
		ParcelID:       p.id,
		TrackingNumber: p.trackingNumber,
		To:             StatusPending,
		At:             b.BookedAt,
		ChangedBy:      &sender,
	})

	return p, nil
}

// Snapshot is the persisted form of a parcel accepted by RestoreParcel.
type Snapshot struct {
	Booking
	Status         Status
	UpdatedAt      time.Time
	ActualDelivery *time.Time
}

// RestoreParcel rebuilds a parcel loaded from storage. No events are raised.
func RestoreParcel(s Snapshot) (*Parcel, error) {
	p, err := NewParcel(s.Booking)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}

	p.status = s.Status
	p.updatedAt = s.UpdatedAt
	p.actualDelivery = s.ActualDelivery
	p.ClearDomainEvents()
	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID                 { return p.id }
func (p *Parcel) TrackingNumber() string          { return p.trackingNumber }
func (p *Parcel) SenderID() kernel.UUID           { return p.senderID }
func (p *Parcel) ReceiverID() kernel.UUID         { return p.receiverID }
func (p *Parcel) Recipient() Recipient            { return p.recipient }
func (p *Parcel) Contents() Contents              { return p.contents }
func (p *Parcel) Pickup() kernel.Location         { return p.pickup }
func (p *Parcel) Delivery() kernel.Location       { return p.delivery }
func (p *Parcel) Status() Status                  { return p.status }
func (p *Parcel) Priority() Priority              { return p.priority }
func (p *Parcel) SpecialInstructions() string     { return p.specialInstructions }
func (p *Parcel) ShippingCost() decimal.Decimal   { return p.shippingCost }
func (p *Parcel) CreatedAt() time.Time            { return p.createdAt }
func (p *Parcel) UpdatedAt() time.Time            { return p.updatedAt }
func (p *Parcel) EstimatedDelivery() time.Time    { return p.estimatedDelivery }
func (p *Parcel) ActualDelivery() *time.Time      { return p.actualDelivery }
func (p *Parcel) DomainEvents() []StatusChanged   { return p.events }
func (p *Parcel) ClearDomainEvents()              { p.events = nil }

// IsParty reports whether the user is the sender or the receiver of the parcel.
func (p *Parcel) IsParty(userID kernel.UUID) bool {
	return p.senderID.IsEqual(userID) || p.receiverID.IsEqual(userID)
}

// IsOverdue reports whether the estimated delivery date has passed while the parcel
// is neither delivered nor cancelled.
func (p *Parcel) IsOverdue(now time.Time) bool {
	if p.status == StatusDelivered || p.status == StatusCancelled {
		return false
	}
	return p.estimatedDelivery.Before(now)
}

// ChangeStatus moves the parcel to status to when rule allows it.
// by is nil for system-initiated changes.
func (p *Parcel) ChangeStatus(to Status, at time.Time, rule TransitionRule, by *kernel.UUID) error {
	if rule == nil {
		rule = StrictTransitions
	}
	if err := rule(p.status, to); err != nil {
		return err
	}

	from := p.status
	p.status = to
	p.updatedAt = at
	if to == StatusDelivered && p.actualDelivery == nil {
		delivered := at
		p.actualDelivery = &delivered
	}

	p.raise(StatusChanged{
		ParcelID:       p.id,
		TrackingNumber: p.trackingNumber,
		From:           from,
		To:             to,
		At:             at,
		ChangedBy:      by,
	})
	return nil
}

func (p *Parcel) raise(e StatusChanged) {
	p.events = append(p.events, e)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(n string) error {
	if n == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if !strings.HasPrefix(n, TrackingNumberPrefix) {
		return errs.NewValueIsInvalidErrorWithCause("trackingNumber",
			fmt.Errorf("%q does not start with %s", n, TrackingNumberPrefix))
	}
	p.trackingNumber = n
	return nil
}

func (p *Parcel) setParties(sender, receiver kernel.UUID) error {
	if err := errors.Join(sender.Validate(), receiver.Validate()); err != nil {
		return err
	}
	p.senderID = sender
	p.receiverID = receiver
	return nil
}

func (p *Parcel) setRecipient(r Recipient) error {
	if err := r.Validate(); err != nil {
		return err
	}
	p.recipient = r
	return nil
}

func (p *Parcel) setContents(c Contents) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p.contents = c
	return nil
}

func (p *Parcel) setRoute(pickup, delivery kernel.Location) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	p.pickup = pickup
	p.delivery = delivery
	return nil
}

func (p *Parcel) setPriority(pr Priority) error {
	if err := pr.Validate(); err != nil {
		return err
	}
	p.priority = pr
	return nil
}

func (p *Parcel) setShippingCost(cost decimal.Decimal) error {
	if !cost.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("shippingCost", fmt.Errorf("%s is not greater than 0", cost))
	}
	p.shippingCost = cost
	return nil
}
