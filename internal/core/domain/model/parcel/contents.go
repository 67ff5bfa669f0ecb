package parcel

import (
	"errors"
	"fmt"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrContentsIsNotConstructed = errs.NewValueIsRequiredError("contents must be created via NewContents constructor")

// Contents describes what is being shipped. Weight is in kilograms, declared value
// in the billing currency.
type Contents struct { //nolint:recvcheck //using for validation
	description   string
	weight        decimal.Decimal
	declaredValue decimal.Decimal
	guard         guard.ConstructorGuard
}

func NewContents(description string, weight, declaredValue decimal.Decimal) (Contents, error) {
	c := Contents{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setDescription(description),
		c.setWeight(weight),
		c.setDeclaredValue(declaredValue),
	); err != nil {
		return Contents{}, err
	}

	return c, nil
}

func (c Contents) Validate() error {
	return c.guard.Validate(ErrContentsIsNotConstructed)
}

func (c Contents) Description() string            { return c.description }
func (c Contents) Weight() decimal.Decimal        { return c.weight }
func (c Contents) DeclaredValue() decimal.Decimal { return c.declaredValue }

func (c *Contents) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	c.description = description
	return nil
}

func (c *Contents) setWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", weight))
	}
	c.weight = weight
	return nil
}

func (c *Contents) setDeclaredValue(value decimal.Decimal) error {
	if !value.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("declaredValue", fmt.Errorf("%s is not greater than 0", value))
	}
	c.declaredValue = value
	return nil
}
