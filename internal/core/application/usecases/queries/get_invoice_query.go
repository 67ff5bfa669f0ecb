package queries

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via one of the NewGetInvoice constructors",
)

type invoiceKey int

const (
	invoiceByID invoiceKey = iota
	invoiceByNumber
	invoiceByParcel
)

// GetInvoiceQuery reads one invoice by id, by invoice number or by its parcel.
type GetInvoiceQuery struct {
	key      invoiceKey
	id       kernel.UUID
	number   string
	parcelID kernel.UUID
	actor    kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetInvoiceQuery(invoiceID kernel.UUID, actor kernel.Actor) (GetInvoiceQuery, error) {
	if err := errors.Join(invoiceID.Validate(), actor.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{key: invoiceByID, id: invoiceID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func NewGetInvoiceByNumberQuery(number string, actor kernel.Actor) (GetInvoiceQuery, error) {
	number = strings.TrimSpace(number)
	var numberErr error
	if number == "" {
		numberErr = errs.NewValueIsRequiredError("invoiceNumber")
	}
	if err := errors.Join(numberErr, actor.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{key: invoiceByNumber, number: number, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func NewGetInvoiceByParcelQuery(parcelID kernel.UUID, actor kernel.Actor) (GetInvoiceQuery, error) {
	if err := errors.Join(parcelID.Validate(), actor.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{key: invoiceByParcel, parcelID: parcelID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

func (q GetInvoiceQuery) Actor() kernel.Actor { return q.actor }
