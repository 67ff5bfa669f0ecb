package invoice

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// PaymentStatus is the payment lifecycle state of an invoice.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentOverdue   PaymentStatus = "OVERDUE"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var paymentNext = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentPaid, PaymentOverdue, PaymentCancelled},
	PaymentOverdue:   {PaymentPaid, PaymentCancelled},
	PaymentPaid:      {PaymentRefunded},
	PaymentCancelled: nil,
	PaymentRefunded:  nil,
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	if err := ps.Validate(); err != nil {
		return "", err
	}
	return ps, nil
}

func (s PaymentStatus) Validate() error {
	if _, ok := paymentNext[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
	return nil
}

func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentRule decides whether an invoice may move between payment statuses.
type PaymentRule func(from, to PaymentStatus) error

// StrictPayments allows PENDING -> PAID|OVERDUE|CANCELLED, OVERDUE -> PAID|CANCELLED and PAID -> REFUNDED.
func StrictPayments(from, to PaymentStatus) error {
	if err := to.Validate(); err != nil {
		return err
	}
	for _, n := range paymentNext[from] {
		if n == to {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"paymentStatus",
		fmt.Errorf("transition from %s to %s is not allowed", from, to),
	)
}

// AnyPayment allows every move to a known payment status.
func AnyPayment(_, to PaymentStatus) error {
	return to.Validate()
}

// PaymentMethod records how an invoice was settled. It is informational only.
type PaymentMethod string

const (
	MethodCash          PaymentMethod = "CASH"
	MethodCreditCard    PaymentMethod = "CREDIT_CARD"
	MethodDebitCard     PaymentMethod = "DEBIT_CARD"
	MethodBankTransfer  PaymentMethod = "BANK_TRANSFER"
	MethodDigitalWallet PaymentMethod = "DIGITAL_WALLET"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m PaymentMethod) Validate() error {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodDigitalWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

func (m PaymentMethod) String() string {
	return string(m)
}
