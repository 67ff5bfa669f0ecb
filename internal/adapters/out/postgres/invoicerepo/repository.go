package invoicerepo

import (
	"context"
	"time"

	"parcels/internal/adapters/out/postgres/dberr"
	"parcels/internal/core/domain/model/invoice"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ports.InvoiceRepository and ports.InvoiceReader.
type GormInvoiceRepository struct {
	db *gorm.DB
}

func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Add inserts a new invoice. A second invoice for the same parcel violates the
// unique index and is reported as a ConflictError.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error
	return dberr.Write("invoice", "parcel", aggregate.ParcelID().String(), err)
}

// Update saves the payment state of an existing invoice.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *invoice.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("id = ?", dto.ID).
		Select("payment_status", "payment_method", "paid_date", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "invoice", id.String(), "id = ?", id.Bytes())
}

// GetForUpdate is Get holding a row lock until the transaction ends.
func (r *GormInvoiceRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(db, "invoice", id.String(), "id = ?", id.Bytes())
}

func (r *GormInvoiceRepository) GetByNumber(ctx context.Context, number string) (*invoice.Invoice, error) {
	return r.first(r.db.WithContext(ctx), "invoiceNumber", number, "invoice_number = ?", number)
}

func (r *GormInvoiceRepository) GetByParcel(ctx context.Context, parcelID kernel.UUID) (*invoice.Invoice, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}
	return r.first(r.db.WithContext(ctx), "parcelID", parcelID.String(), "parcel_id = ?", parcelID.Bytes())
}

func (r *GormInvoiceRepository) first(db *gorm.DB, resource string, key any, where string, args ...any) (*invoice.Invoice, error) {
	var dto InvoiceDTO
	if err := db.Where(where, args...).First(&dto).Error; err != nil {
		return nil, dberr.Read(resource, key, err)
	}
	return toDomain(dto)
}

func (r *GormInvoiceRepository) ListByPaymentStatus(ctx context.Context, status invoice.PaymentStatus) ([]*invoice.Invoice, error) {
	return r.list(r.db.WithContext(ctx).Where("payment_status = ?", status.String()))
}

// ListBySender returns the invoices of parcels sent by senderID.
func (r *GormInvoiceRepository) ListBySender(ctx context.Context, senderID kernel.UUID) ([]*invoice.Invoice, error) {
	return r.list(r.db.WithContext(ctx).
		Joins("JOIN parcels ON parcels.id = invoices.parcel_id").
		Where("parcels.sender_id = ?", senderID.Bytes()))
}

// ListOverdue returns PENDING invoices past their due date. Cancelled or refunded
// invoices are never overdue.
func (r *GormInvoiceRepository) ListOverdue(ctx context.Context, now time.Time) ([]*invoice.Invoice, error) {
	return r.list(r.db.WithContext(ctx).
		Where("payment_status = ? AND due_date < ?", invoice.PaymentPending.String(), now))
}

// RevenueBetween sums PAID totals with paid date in [from, to]; zero when none match.
func (r *GormInvoiceRepository) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&InvoiceDTO{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("payment_status = ? AND paid_date BETWEEN ? AND ?", invoice.PaymentPaid.String(), from, to).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *GormInvoiceRepository) ListAll(ctx context.Context) ([]*invoice.Invoice, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *GormInvoiceRepository) list(db *gorm.DB) ([]*invoice.Invoice, error) {
	var dtos []InvoiceDTO
	if err := db.Order("invoices.issued_date DESC").Order("invoices.id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}
