package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

const (
	// NumberPrefix starts every invoice number.
	NumberPrefix = "INV"
	// PaymentTerm is the time between issue and due date.
	PaymentTerm = 30 * 24 * time.Hour
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is the billing record of exactly one parcel.
type Invoice struct {
	id            kernel.UUID
	number        string
	parcelID      kernel.UUID
	amounts       Amounts
	paymentStatus PaymentStatus
	paymentMethod *PaymentMethod
	issuedDate    time.Time
	dueDate       time.Time
	paidDate      *time.Time
	notes         string
	updatedAt     time.Time

	isConstructed bool
}

// NewInvoice issues a PENDING invoice due PaymentTerm after issuedAt. A zero
// issuedAt means now.
func NewInvoice(id kernel.UUID, number string, parcelID kernel.UUID, amounts Amounts, issuedAt time.Time, notes string) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		amounts.Validate(),
		validateNumber(number),
	); err != nil {
		return nil, err
	}

	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	return &Invoice{
		id:            id,
		number:        number,
		parcelID:      parcelID,
		amounts:       amounts,
		paymentStatus: PaymentPending,
		issuedDate:    issuedAt,
		dueDate:       issuedAt.Add(PaymentTerm),
		notes:         strings.TrimSpace(notes),
		updatedAt:     issuedAt,
		isConstructed: true,
	}, nil
}

// Snapshot is the persisted form accepted by RestoreInvoice.
type Snapshot struct {
	ID            kernel.UUID
	Number        string
	ParcelID      kernel.UUID
	Amounts       Amounts
	PaymentStatus PaymentStatus
	PaymentMethod *PaymentMethod
	IssuedDate    time.Time
	DueDate       time.Time
	PaidDate      *time.Time
	Notes         string
	UpdatedAt     time.Time
}

func RestoreInvoice(s Snapshot) (*Invoice, error) {
	inv, err := NewInvoice(s.ID, s.Number, s.ParcelID, s.Amounts, s.IssuedDate, s.Notes)
	if err != nil {
		return nil, err
	}
	if err = s.PaymentStatus.Validate(); err != nil {
		return nil, err
	}
	if s.PaymentMethod != nil {
		if err = s.PaymentMethod.Validate(); err != nil {
			return nil, err
		}
	}

	inv.paymentStatus = s.PaymentStatus
	inv.paymentMethod = s.PaymentMethod
	inv.dueDate = s.DueDate
	inv.paidDate = s.PaidDate
	inv.updatedAt = s.UpdatedAt
	return inv, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID               { return i.id }
func (i *Invoice) Number() string                { return i.number }
func (i *Invoice) ParcelID() kernel.UUID         { return i.parcelID }
func (i *Invoice) Amounts() Amounts              { return i.amounts }
func (i *Invoice) PaymentStatus() PaymentStatus  { return i.paymentStatus }
func (i *Invoice) PaymentMethod() *PaymentMethod { return i.paymentMethod }
func (i *Invoice) IssuedDate() time.Time         { return i.issuedDate }
func (i *Invoice) DueDate() time.Time            { return i.dueDate }
func (i *Invoice) PaidDate() *time.Time          { return i.paidDate }
func (i *Invoice) Notes() string                 { return i.notes }
func (i *Invoice) UpdatedAt() time.Time          { return i.updatedAt }

// IsOverdue reports whether the due date has passed while payment is still PENDING.
// Cancelled and refunded invoices are never overdue.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.paymentStatus == PaymentPending && i.dueDate.Before(now)
}

// UpdatePayment records a payment status change. method, when non-nil, replaces the
// recorded payment method. Entering PAID stamps paidDate; leaving PAID keeps it.
func (i *Invoice) UpdatePayment(to PaymentStatus, method *PaymentMethod, at time.Time, rule PaymentRule) error {
	if rule == nil {
		rule = StrictPayments
	}
	if method != nil {
		if err := method.Validate(); err != nil {
			return err
		}
	}
	if err := rule(i.paymentStatus, to); err != nil {
		return err
	}

	i.paymentStatus = to
	if method != nil {
		m := *method
		i.paymentMethod = &m
	}
	if to == PaymentPaid {
		paid := at
		i.paidDate = &paid
	}
	i.updatedAt = at
	return nil
}

func validateNumber(n string) error {
	if n == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	if !strings.HasPrefix(n, NumberPrefix) {
		return errs.NewValueIsInvalidErrorWithCause("invoiceNumber", fmt.Errorf("%q does not start with %s", n, NumberPrefix))
	}
	return nil
}
