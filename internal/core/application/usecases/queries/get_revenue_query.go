package queries

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrGetRevenueQueryIsNotConstructed = errors.New(
	"GetRevenueQuery must be created via NewGetRevenueQuery constructor",
)

// GetRevenueQuery sums paid invoice totals by paid date over [from, to]. Staff only.
type GetRevenueQuery struct {
	actor kernel.Actor
	from  time.Time
	to    time.Time

	guard guard.ConstructorGuard
}

func NewGetRevenueQuery(actor kernel.Actor, from, to time.Time) (GetRevenueQuery, error) {
	var rangeErr error
	switch {
	case from.IsZero() || to.IsZero():
		rangeErr = errs.NewValueIsRequiredErrorWithCause("dateRange", errors.New("both startDate and endDate are required"))
	case from.After(to):
		rangeErr = errs.NewValueIsInvalidErrorWithCause("dateRange", errors.New("startDate is after endDate"))
	}
	if err := errors.Join(actor.Validate(), rangeErr); err != nil {
		return GetRevenueQuery{}, err
	}
	return GetRevenueQuery{actor: actor, from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRevenueQuery) Validate() error {
	return q.guard.Validate(ErrGetRevenueQueryIsNotConstructed)
}

func (q GetRevenueQuery) Actor() kernel.Actor { return q.actor }
func (q GetRevenueQuery) From() time.Time     { return q.from }
func (q GetRevenueQuery) To() time.Time       { return q.to }

// RevenueView is the revenue total, zero when nothing was paid in the range.
type RevenueView struct {
	From  time.Time `json:"startDate"`
	To    time.Time `json:"endDate"`
	Total string    `json:"totalRevenue"`
}

type GetRevenueQueryHandler struct {
	invoices ports.InvoiceReader
	access   services.AccessGuard
}

func NewGetRevenueQueryHandler(invoices ports.InvoiceReader, access services.AccessGuard) GetRevenueQueryHandler {
	return GetRevenueQueryHandler{invoices: invoices, access: access}
}

func (h GetRevenueQueryHandler) Handle(ctx context.Context, query GetRevenueQuery) (RevenueView, error) {
	if err := query.Validate(); err != nil {
		return RevenueView{}, err
	}
	if err := h.access.RequireStaff(query.Actor(), services.ResourceInvoice, services.ActionView); err != nil {
		return RevenueView{}, err
	}

	total, err := h.invoices.RevenueBetween(ctx, query.From(), query.To())
	if err != nil {
		return RevenueView{}, err
	}
	return RevenueView{From: query.From(), To: query.To(), Total: total.StringFixed(2)}, nil
}
