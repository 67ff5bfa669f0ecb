package ports

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// InvoiceRepository is the transactional write side for invoices.
type InvoiceRepository interface {
	// Add persists a new invoice. A second invoice for the same parcel, or a duplicate
	// invoice number, yields an errs.ConflictError.
	Add(ctx context.Context, aggregate *invoice.Invoice) error
	Update(ctx context.Context, aggregate *invoice.Invoice) error
	GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
	GetByParcel(ctx context.Context, parcelID kernel.UUID) (*invoice.Invoice, error)
}

// InvoiceReader serves the read-only invoice queries.
type InvoiceReader interface {
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error)
	GetByParcel(ctx context.Context, parcelID kernel.UUID) (*invoice.Invoice, error)
	ListByPaymentStatus(ctx context.Context, status invoice.PaymentStatus) ([]*invoice.Invoice, error)
	// ListBySender joins through the parcel to its sender.
	ListBySender(ctx context.Context, senderID kernel.UUID) ([]*invoice.Invoice, error)
	// ListOverdue returns PENDING invoices whose due date is before now.
	ListOverdue(ctx context.Context, now time.Time) ([]*invoice.Invoice, error)
	// RevenueBetween sums totals of PAID invoices by paid date, bounds inclusive.
	// It returns zero when nothing matches.
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ListAll(ctx context.Context) ([]*invoice.Invoice, error)
}
