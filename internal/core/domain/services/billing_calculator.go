package services

import (
	"fmt"
	"time"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	baseCharge     = decimal.NewFromInt(5)
	ratePerKg      = decimal.NewFromInt(2)
	defaultTax     = decimal.RequireFromString("0.10")
	tierByPriority = map[parcel.Priority]tier{
		parcel.PriorityStandard:  {multiplier: decimal.NewFromInt(1), transitDays: 5},
		parcel.PriorityExpress:   {multiplier: decimal.RequireFromString("1.5"), transitDays: 2},
		parcel.PriorityOvernight: {multiplier: decimal.NewFromInt(2), transitDays: 1},
	}
)

type tier struct {
	multiplier  decimal.Decimal
	transitDays int
}

// BillingCalculator prices parcels at booking time and derives invoice amounts.
// All arithmetic is decimal; nothing is rounded here, rounding is a display concern.
//
//	cost = (5.00 + weight * 2.00) * multiplier(priority)
//	tax  = base * 0.10
type BillingCalculator struct {
	taxRate decimal.Decimal
}

func NewBillingCalculator() BillingCalculator {
	return BillingCalculator{taxRate: defaultTax}
}

// ShippingCost prices a parcel of the given weight (kg). An empty priority is STANDARD.
func (c BillingCalculator) ShippingCost(weight decimal.Decimal, priority parcel.Priority) (decimal.Decimal, error) {
	if !weight.IsPositive() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", weight))
	}
	t, err := tierOf(priority)
	if err != nil {
		return decimal.Zero, err
	}
	return baseCharge.Add(weight.Mul(ratePerKg)).Mul(t.multiplier), nil
}

// EstimatedDelivery returns now plus the transit days of the priority tier:
// OVERNIGHT 1, EXPRESS 2, STANDARD 5.
func (c BillingCalculator) EstimatedDelivery(priority parcel.Priority, now time.Time) (time.Time, error) {
	t, err := tierOf(priority)
	if err != nil {
		return time.Time{}, err
	}
	return now.AddDate(0, 0, t.transitDays), nil
}

// InvoiceAmounts bills the shipping cost with tax and no discount.
func (c BillingCalculator) InvoiceAmounts(shippingCost decimal.Decimal) (invoice.Amounts, error) {
	rate := c.taxRate
	if rate.IsZero() {
		rate = defaultTax
	}
	return invoice.NewAmounts(shippingCost, shippingCost.Mul(rate), decimal.Zero)
}

func tierOf(priority parcel.Priority) (tier, error) {
	if priority == "" {
		priority = parcel.PriorityStandard
	}
	t, ok := tierByPriority[priority]
	if !ok {
		return tier{}, priority.Validate()
	}
	return t, nil
}
