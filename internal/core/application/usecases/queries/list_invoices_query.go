package queries

import (
	"context"
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrListInvoicesQueryIsNotConstructed = errors.New(
	"ListInvoicesQuery must be created via NewListInvoicesQuery or NewListInvoicesByStatusQuery constructor",
)

// InvoiceScope selects which invoices a ListInvoicesQuery returns.
type InvoiceScope string

const (
	// InvoiceScopeMine lists invoices of parcels the actor sent.
	InvoiceScopeMine     InvoiceScope = "mine"
	InvoiceScopeByStatus InvoiceScope = "status"
	InvoiceScopeOverdue  InvoiceScope = "overdue"
	InvoiceScopeAll      InvoiceScope = "all"
)

type ListInvoicesQuery struct {
	actor  kernel.Actor
	scope  InvoiceScope
	status invoice.PaymentStatus

	guard guard.ConstructorGuard
}

// NewListInvoicesQuery builds the mine, overdue or all listing.
func NewListInvoicesQuery(actor kernel.Actor, scope InvoiceScope) (ListInvoicesQuery, error) {
	var scopeErr error
	switch scope {
	case InvoiceScopeMine, InvoiceScopeOverdue, InvoiceScopeAll:
	default:
		scopeErr = errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not an invoice list scope", string(scope)))
	}
	if err := errors.Join(actor.Validate(), scopeErr); err != nil {
		return ListInvoicesQuery{}, err
	}
	return ListInvoicesQuery{actor: actor, scope: scope, guard: guard.NewConstructorGuard()}, nil
}

func NewListInvoicesByStatusQuery(actor kernel.Actor, status string) (ListInvoicesQuery, error) {
	st, statusErr := invoice.ParsePaymentStatus(status)
	if err := errors.Join(actor.Validate(), statusErr); err != nil {
		return ListInvoicesQuery{}, err
	}
	return ListInvoicesQuery{actor: actor, scope: InvoiceScopeByStatus, status: st, guard: guard.NewConstructorGuard()}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

func (q ListInvoicesQuery) Actor() kernel.Actor { return q.actor }
func (q ListInvoicesQuery) Scope() InvoiceScope { return q.scope }

// ListInvoicesQueryHandler serves the invoice lists. Everything but the actor's own
// invoices is staff only.
type ListInvoicesQueryHandler struct {
	invoices ports.InvoiceReader
	access   services.AccessGuard
	clock    Clock
}

func NewListInvoicesQueryHandler(invoices ports.InvoiceReader, access services.AccessGuard) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{invoices: invoices, access: access}
}

func (h ListInvoicesQueryHandler) WithClock(clock Clock) ListInvoicesQueryHandler {
	h.clock = clock
	return h
}

func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Scope() != InvoiceScopeMine {
		if err := h.access.RequireStaff(query.Actor(), services.ResourceInvoice, services.ActionView); err != nil {
			return nil, err
		}
	}

	var (
		invoices []*invoice.Invoice
		err      error
	)
	switch query.Scope() {
	case InvoiceScopeByStatus:
		invoices, err = h.invoices.ListByPaymentStatus(ctx, query.status)
	case InvoiceScopeOverdue:
		invoices, err = h.invoices.ListOverdue(ctx, h.clock.now())
	case InvoiceScopeAll:
		invoices, err = h.invoices.ListAll(ctx)
	default:
		invoices, err = h.invoices.ListBySender(ctx, query.Actor().ID())
	}
	if err != nil {
		return nil, err
	}
	return newInvoiceViews(invoices), nil
}
