package invoice

import (
	"errors"
	"fmt"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAmountsIsNotConstructed = errs.NewValueIsRequiredError("amounts must be created via NewAmounts constructor")

// Amounts is the monetary breakdown of an invoice. Total is always
// base + tax - discount and is recomputed by every With* method.
type Amounts struct { //nolint:recvcheck //using for validation
	base     decimal.Decimal
	tax      decimal.Decimal
	discount decimal.Decimal
	total    decimal.Decimal
	guard    guard.ConstructorGuard
}

// NewAmounts validates base > 0, tax >= 0, discount >= 0 and total > 0.
func NewAmounts(base, tax, discount decimal.Decimal) (Amounts, error) {
	a := Amounts{guard: guard.NewConstructorGuard()}

	if err := errors.Join(a.setBase(base), a.setTax(tax), a.setDiscount(discount)); err != nil {
		return Amounts{}, err
	}

	a.total = base.Add(tax).Sub(discount)
	if !a.total.IsPositive() {
		return Amounts{}, errs.NewValueIsInvalidErrorWithCause(
			"totalAmount",
			fmt.Errorf("%s is not greater than 0", a.total),
		)
	}

	return a, nil
}

func (a Amounts) Validate() error {
	return a.guard.Validate(ErrAmountsIsNotConstructed)
}

func (a Amounts) Base() decimal.Decimal     { return a.base }
func (a Amounts) Tax() decimal.Decimal      { return a.tax }
func (a Amounts) Discount() decimal.Decimal { return a.discount }
func (a Amounts) Total() decimal.Decimal    { return a.total }

func (a Amounts) WithBase(base decimal.Decimal) (Amounts, error) {
	return NewAmounts(base, a.tax, a.discount)
}

func (a Amounts) WithTax(tax decimal.Decimal) (Amounts, error) {
	return NewAmounts(a.base, tax, a.discount)
}

func (a Amounts) WithDiscount(discount decimal.Decimal) (Amounts, error) {
	return NewAmounts(a.base, a.tax, discount)
}

func (a *Amounts) setBase(v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("baseAmount", fmt.Errorf("%s is not greater than 0", v))
	}
	a.base = v
	return nil
}

func (a *Amounts) setTax(v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("taxAmount", fmt.Errorf("%s is negative", v))
	}
	a.tax = v
	return nil
}

func (a *Amounts) setDiscount(v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("discountAmount", fmt.Errorf("%s is negative", v))
	}
	a.discount = v
	return nil
}
