package queries

import (
	"context"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
)

// GetInvoiceQueryHandler returns an invoice to staff or to its parcel's sender.
// Receivers are not shown invoices.
type GetInvoiceQueryHandler struct {
	invoices ports.InvoiceReader
	parcels  ports.ParcelReader
	access   services.AccessGuard
}

func NewGetInvoiceQueryHandler(
	invoices ports.InvoiceReader,
	parcels ports.ParcelReader,
	access services.AccessGuard,
) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{invoices: invoices, parcels: parcels, access: access}
}

func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}

	var (
		inv   *invoice.Invoice
		owner *parcel.Parcel
		err   error
	)

	switch query.key {
	case invoiceByParcel:
		// authorize on the parcel first so a missing invoice is not disclosed to outsiders
		if owner, err = h.parcels.Get(ctx, query.parcelID); err != nil {
			return InvoiceView{}, err
		}
		if err = h.authorize(query, owner); err != nil {
			return InvoiceView{}, err
		}
		if inv, err = h.invoices.GetByParcel(ctx, owner.ID()); err != nil {
			return InvoiceView{}, err
		}
	default:
		if query.key == invoiceByNumber {
			inv, err = h.invoices.GetByNumber(ctx, query.number)
		} else {
			inv, err = h.invoices.Get(ctx, query.id)
		}
		if err != nil {
			return InvoiceView{}, err
		}
		if owner, err = h.parcels.Get(ctx, inv.ParcelID()); err != nil {
			return InvoiceView{}, err
		}
		if err = h.authorize(query, owner); err != nil {
			return InvoiceView{}, err
		}
	}

	return NewInvoiceView(inv, owner.TrackingNumber()), nil
}

func (h GetInvoiceQueryHandler) authorize(query GetInvoiceQuery, owner *parcel.Parcel) error {
	return h.access.Authorize(query.Actor(), services.ResourceInvoice, owner, services.ActionBilling)
}
